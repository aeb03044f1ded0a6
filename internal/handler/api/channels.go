package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "rategrid/internal/handler/dto/request"
	resdto "rategrid/internal/handler/dto/response"
	"rategrid/internal/handler/httperr"
	"rategrid/internal/usecase/commands"
	"rategrid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChannelHandler serves the outbound sync feed consumed by channel adapters
// and the inbound webhook endpoint channels post booking events to.
type ChannelHandler struct {
	invCmds     commands.InventoryCommands
	bookingCmds commands.BookingCommands
	invQueries  queries.InventoryQueries
}

func NewChannelHandler(
	invCmds commands.InventoryCommands,
	bookingCmds commands.BookingCommands,
	invQueries queries.InventoryQueries,
) *ChannelHandler {
	return &ChannelHandler{invCmds: invCmds, bookingCmds: bookingCmds, invQueries: invQueries}
}

// @Summary Sync snapshot
// @Description Page through inventory rows flagged for outbound channel sync
// @Tags channels
// @Produce json
// @Security BearerAuth
// @Param propertyId query string false "Restrict to one property"
// @Param limit query int false "Page size (default 20, max 200)"
// @Param after query string false "Cursor from the previous page"
// @Success 200 {object} resdto.ChannelSnapshotResponse
// @Failure 400 {object} httperr.Response
// @Router /channel/snapshot [get]
func (h *ChannelHandler) Snapshot(c *gin.Context) {
	var propertyID *uuid.UUID
	if v := c.Query("propertyId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid propertyId", nil)
			return
		}
		propertyID = &id
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	records, next, err := h.invQueries.SnapshotForSync(c.Request.Context(), propertyID, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := resdto.FromSyncRecords(records, next)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to map snapshot", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Acknowledge sync
// @Description Clear a channel's dirty flag after it confirmed one date's state
// @Tags channels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ChannelAckRequest true "Ack request"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /channel/ack [post]
func (h *ChannelHandler) Ack(c *gin.Context) {
	var req reqdto.ChannelAckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}
	if err := h.invCmds.ClearDirty(c.Request.Context(), in); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Channel webhook
// @Description Apply a booking event posted by an external channel
// @Tags channels
// @Accept json
// @Produce json
// @Param channel path string true "Channel name"
// @Param request body reqdto.ChannelEventRequest true "Channel event"
// @Success 200 {object} commands.ChannelEventResult
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /webhooks/{channel} [post]
func (h *ChannelHandler) Webhook(c *gin.Context) {
	channel := c.Param("channel")
	var req reqdto.ChannelEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.bookingCmds.HandleChannelEvent(c.Request.Context(), channel, req)
	if err != nil {
		if errors.Is(err, commands.ErrUnknownRoomCode) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "No room type mapped for this room code", nil)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
