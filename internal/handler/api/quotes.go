package api

import (
	"errors"
	"net/http"

	reqdto "rategrid/internal/handler/dto/request"
	resdto "rategrid/internal/handler/dto/response"
	"rategrid/internal/handler/httperr"
	"rategrid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	q queries.QuoteQueries
}

func NewQuoteHandler(q queries.QuoteQueries) *QuoteHandler {
	return &QuoteHandler{q: q}
}

// @Summary Quote a stay
// @Description Price a stay against an approved rate for one property, room type and channel
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.QuoteRequest true "Quote request"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /quotes [post]
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	query, err := req.ToQuery()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}
	view, err := h.q.Quote(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, queries.ErrRateNotQuotable) {
			httperr.AbortWithError(c, http.StatusConflict, err, "Rate is not approved for quoting", nil)
			return
		}
		respondError(c, err)
		return
	}
	resp, err := resdto.FromQuoteView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to map quote", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
