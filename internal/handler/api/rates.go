package api

import (
	"net/http"
	"strconv"
	"time"

	reqdto "rategrid/internal/handler/dto/request"
	resdto "rategrid/internal/handler/dto/response"
	"rategrid/internal/handler/httperr"
	"rategrid/internal/handler/middleware"
	"rategrid/internal/usecase/commands"
	"rategrid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RateHandler struct {
	cmds commands.RateCommands
	q    queries.RateQueries
}

func NewRateHandler(cmds commands.RateCommands, q queries.RateQueries) *RateHandler {
	return &RateHandler{cmds: cmds, q: q}
}

// @Summary Create rate
// @Description Create a centralized rate in draft state
// @Tags rates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRateRequest true "Create rate request"
// @Success 201 {object} resdto.RateResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /rates [post]
func (h *RateHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoPrincipal, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := resdto.FromRateView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to map rate", nil)
		return
	}
	c.Header("Location", "/api/rates/"+view.ID.String())
	c.JSON(http.StatusCreated, resp)
}

// @Summary Get rate
// @Description Get a rate with its full definition, property overrides and conflicts
// @Tags rates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rate ID"
// @Success 200 {object} resdto.RateResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rates/{id} [get]
func (h *RateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rate id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := resdto.FromRateView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to map rate", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List rates
// @Description List rates filtered by group, property, status, type or active date
// @Tags rates
// @Produce json
// @Security BearerAuth
// @Param groupId query string false "Filter by property group"
// @Param propertyId query string false "Filter by targeted property"
// @Param status query string false "Filter by approval status"
// @Param rateType query string false "Filter by rate type"
// @Param activeOn query string false "Only rates valid on this date (YYYY-MM-DD)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.RateListResponse
// @Failure 400 {object} httperr.Response
// @Router /rates [get]
func (h *RateHandler) List(c *gin.Context) {
	filter, err := parseRateListFilter(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid filter", nil)
		return
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
	items, next, err := h.q.List(c.Request.Context(), filter, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := resdto.FromRateList(items, next)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to map rates", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update rate
// @Description Patch a rate; material changes revert approval to pending
// @Tags rates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rate ID"
// @Param request body reqdto.UpdateRateRequest true "Update rate request"
// @Success 200 {object} resdto.RateResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rates/{id} [patch]
func (h *RateHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rate id", nil)
		return
	}
	actor, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoPrincipal, "Unauthorized", nil)
		return
	}
	var req reqdto.UpdateRateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Update(c.Request.Context(), id, req, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := resdto.FromRateView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to map rate", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Delete rate
// @Description Delete a rate; only draft and rejected rates can be deleted
// @Tags rates
// @Security BearerAuth
// @Param id path string true "Rate ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rates/{id} [delete]
func (h *RateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rate id", nil)
		return
	}
	actor, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoPrincipal, "Unauthorized", nil)
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Duplicate rate
// @Description Copy a rate under a new name with approval state reset to draft
// @Tags rates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rate ID"
// @Param request body reqdto.DuplicateRateRequest true "Duplicate rate request"
// @Success 201 {object} resdto.RateResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rates/{id}/duplicate [post]
func (h *RateHandler) Duplicate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rate id", nil)
		return
	}
	actor, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoPrincipal, "Unauthorized", nil)
		return
	}
	var req reqdto.DuplicateRateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Duplicate(c.Request.Context(), id, req, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := resdto.FromRateView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to map rate", nil)
		return
	}
	c.Header("Location", "/api/rates/"+view.ID.String())
	c.JSON(http.StatusCreated, resp)
}

// @Summary Transition rate
// @Description Move a rate through its approval lifecycle (submit, approve, reject, expire)
// @Tags rates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rate ID"
// @Param request body reqdto.TransitionRateRequest true "Transition request"
// @Success 200 {object} resdto.RateResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rates/{id}/transition [post]
func (h *RateHandler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rate id", nil)
		return
	}
	actor, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoPrincipal, "Unauthorized", nil)
		return
	}
	var req reqdto.TransitionRateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Transition(c.Request.Context(), id, req, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := resdto.FromRateView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to map rate", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Rate history
// @Description Get the append-only change log of a rate
// @Tags rates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rate ID"
// @Success 200 {object} resdto.RateHistoryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rates/{id}/history [get]
func (h *RateHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rate id", nil)
		return
	}
	entries, err := h.q.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := resdto.FromRateHistory(entries)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to map history", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseRateListFilter(c *gin.Context) (queries.RateListFilter, error) {
	var filter queries.RateListFilter
	if v := c.Query("groupId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return queries.RateListFilter{}, err
		}
		filter.GroupID = &id
	}
	if v := c.Query("propertyId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return queries.RateListFilter{}, err
		}
		filter.PropertyID = &id
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("rateType"); v != "" {
		filter.RateType = &v
	}
	if v := c.Query("activeOn"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return queries.RateListFilter{}, err
		}
		filter.ActiveOn = &d
	}
	return filter, nil
}
