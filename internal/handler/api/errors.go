package api

import (
	"errors"
	"net/http"

	"rategrid/internal/handler/httperr"
	"rategrid/internal/infra"
	"rategrid/internal/pkg/errs"
	"rategrid/internal/usecase/commands"
	"rategrid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// errNoPrincipal covers requests that reach a handler without passing
// RequireAuth, which should not happen with the router wired correctly.
var errNoPrincipal = errs.New("no principal in request context")

// respondError maps a usecase error onto the shared response envelope.
// Handlers with operation-specific sentinels check those before falling
// back here.
func respondError(c *gin.Context, err error) {
	status, msg := classifyError(err)
	httperr.AbortWithError(c, status, err, msg, nil)
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrRateNotFound):
		return http.StatusNotFound, "Rate not found"
	case errors.Is(err, errs.ErrPropertyNotFound):
		return http.StatusNotFound, "Property not found"
	case errors.Is(err, errs.ErrRoomTypeNotFound):
		return http.StatusNotFound, "Room type not found"
	case errors.Is(err, errs.ErrBookingNotFound):
		return http.StatusNotFound, "Booking not found"
	case errors.Is(err, commands.ErrGroupNotFound):
		return http.StatusNotFound, "Group not found"
	case errors.Is(err, queries.ErrInvalidCursor):
		return http.StatusBadRequest, "Invalid cursor"
	case errors.Is(err, errs.ErrValidation):
		return http.StatusUnprocessableEntity, "Validation failed"
	case errors.Is(err, errs.ErrStateViolation):
		return http.StatusConflict, "Operation not allowed in the current state"
	case errors.Is(err, errs.ErrInsufficientInventory):
		return http.StatusConflict, "Insufficient inventory"
	case errors.Is(err, errs.ErrStayViolation):
		return http.StatusUnprocessableEntity, "Stay restrictions not met"
	case errors.Is(err, errs.ErrRestrictionViolation):
		return http.StatusUnprocessableEntity, "Dates are closed for this operation"
	case errors.Is(err, errs.ErrConflictUnresolved):
		return http.StatusConflict, "Unresolved rate conflict"
	case errors.Is(err, errs.ErrTransient):
		return http.StatusServiceUnavailable, "Temporarily unavailable, retry later"
	case infra.IsKind(err, infra.KindNotFound):
		return http.StatusNotFound, "Not found"
	case infra.IsKind(err, infra.KindDuplicateKey):
		return http.StatusConflict, "Already exists"
	case infra.IsKind(err, infra.KindConflict):
		return http.StatusConflict, "Concurrent modification, retry"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
