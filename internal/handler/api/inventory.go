package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "rategrid/internal/handler/dto/request"
	resdto "rategrid/internal/handler/dto/response"
	"rategrid/internal/handler/httperr"
	"rategrid/internal/usecase/commands"
	"rategrid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	cmds commands.InventoryCommands
	q    queries.InventoryQueries
}

func NewInventoryHandler(cmds commands.InventoryCommands, q queries.InventoryQueries) *InventoryHandler {
	return &InventoryHandler{cmds: cmds, q: q}
}

// @Summary Reserve rooms
// @Description Reserve rooms across a stay span; all nights succeed or none do
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReserveRequest true "Reserve request"
// @Success 200 {object} commands.ReserveResult
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /inventory/reserve [post]
func (h *InventoryHandler) Reserve(c *gin.Context) {
	var req reqdto.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}
	result, err := h.cmds.Reserve(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, commands.ErrSpanNotMaterialized) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Inventory records missing for part of the span", nil)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Release reservation
// @Description Return a booking's rooms across every night it holds; idempotent
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReleaseRequest true "Release request"
// @Success 200 {object} commands.ReleaseResult
// @Failure 400 {object} httperr.Response
// @Router /inventory/release [post]
func (h *InventoryHandler) Release(c *gin.Context) {
	var req reqdto.ReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Release(c.Request.Context(), req.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Block rooms
// @Description Take rooms out of sale for maintenance or holds over a date range
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BlockRequest true "Block request"
// @Success 200 {object} commands.BlockResult
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /inventory/block [post]
func (h *InventoryHandler) Block(c *gin.Context) {
	var req reqdto.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}
	result, err := h.cmds.Block(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Set ledger rates
// @Description Write base and selling rates onto materialized dates
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SetInventoryRatesRequest true "Set rates request"
// @Success 200 {object} commands.SetRatesResult
// @Failure 400 {object} httperr.Response
// @Router /inventory/rates [post]
func (h *InventoryHandler) SetRates(c *gin.Context) {
	var req reqdto.SetInventoryRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}
	result, err := h.cmds.SetRates(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Materialize inventory
// @Description Create missing date records out to the horizon; existing rows are untouched
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.MaterializeRequest true "Materialize request"
// @Success 200 {object} commands.MaterializeResult
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /inventory/materialize [post]
func (h *InventoryHandler) Materialize(c *gin.Context) {
	var req reqdto.MaterializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}
	result, err := h.cmds.Materialize(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Availability calendar
// @Description Read per-date availability and rates for one property room type
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param propertyId query string true "Property ID"
// @Param roomTypeId query string true "Room type ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /inventory/calendar [get]
func (h *InventoryHandler) Calendar(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Query("propertyId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid propertyId", nil)
		return
	}
	roomTypeID, err := uuid.Parse(c.Query("roomTypeId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid roomTypeId", nil)
		return
	}
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from date", nil)
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid to date", nil)
		return
	}
	days, err := h.q.Calendar(c.Request.Context(), propertyID, roomTypeID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := resdto.FromCalendar(propertyID, roomTypeID, days)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to map calendar", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
