package api

import (
	"errors"
	"net/http"

	reqdto "rategrid/internal/handler/dto/request"
	"rategrid/internal/handler/httperr"
	"rategrid/internal/handler/middleware"
	"rategrid/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DistributionHandler struct {
	cmds commands.DistributionCommands
}

func NewDistributionHandler(cmds commands.DistributionCommands) *DistributionHandler {
	return &DistributionHandler{cmds: cmds}
}

// @Summary Distribute rate
// @Description Push an approved rate to its target properties
// @Tags distribution
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rate ID"
// @Param request body reqdto.DistributeRequest true "Distribution request"
// @Success 200 {object} commands.DistributionResult
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rates/{id}/distribute [post]
func (h *DistributionHandler) Distribute(c *gin.Context) {
	rateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rate id", nil)
		return
	}
	actor, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoPrincipal, "Unauthorized", nil)
		return
	}
	var req reqdto.DistributeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Distribute(c.Request.Context(), rateID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNoTargets):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "No target properties resolve for this mode", nil)
		case errors.Is(err, commands.ErrTargetOutsideGroup):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "A target property is outside the rate's group", nil)
		case errors.Is(err, commands.ErrDuplicateSuperseded):
			httperr.AbortWithError(c, http.StatusConflict, err, "A duplicate rate with higher precedence supersedes this one", nil)
		default:
			respondError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Preview distribution
// @Description Resolve targets and detect conflicts without persisting anything
// @Tags distribution
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rate ID"
// @Param request body reqdto.DistributeRequest true "Distribution request"
// @Success 200 {object} commands.DistributionResult
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rates/{id}/preview [post]
func (h *DistributionHandler) Preview(c *gin.Context) {
	rateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rate id", nil)
		return
	}
	var req reqdto.DistributeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Preview(c.Request.Context(), rateID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Resolve conflict
// @Description Resolve a detected conflict between two rates
// @Tags distribution
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ResolveConflictRequest true "Resolution request"
// @Success 200 {object} commands.ConflictSummary
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /rates/conflicts/resolve [post]
func (h *DistributionHandler) ResolveConflict(c *gin.Context) {
	actor, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoPrincipal, "Unauthorized", nil)
		return
	}
	var req reqdto.ResolveConflictRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	summary, err := h.cmds.ResolveConflict(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, commands.ErrNoConflict) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Rates have no conflict to resolve", nil)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Sync group rates
// @Description Re-distribute every approved rate of a property group
// @Tags distribution
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param request body reqdto.SyncGroupRequest true "Sync request"
// @Success 200 {object} map[string]any
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /groups/{id}/sync [post]
func (h *DistributionHandler) SyncGroup(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid group id", nil)
		return
	}
	actor, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoPrincipal, "Unauthorized", nil)
		return
	}
	var req reqdto.SyncGroupRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	results, err := h.cmds.SyncGroupRates(c.Request.Context(), groupID, req, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groupId": groupID, "results": results})
}
