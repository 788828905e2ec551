package handlers

import (
	"github.com/gin-gonic/gin"

	"ferropos/internal/domain/reports"
	"ferropos/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service

	// lowStockThreshold is the default when the query does not override it.
	lowStockThreshold int64
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service, lowStockThreshold int64) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler:       base,
		service:           service,
		lowStockThreshold: lowStockThreshold,
	}
}

// GetDailyHistory handles GET /reports/daily
func (h *ReportsHandler) GetDailyHistory(c *gin.Context) {
	var q dto.DailyHistoryQuery
	if !h.BindQuery(c, &q) {
		return
	}

	scanFilter, err := scanFilterFromQuery(q.From, q.To)
	if err != nil {
		h.Error(c, err)
		return
	}
	filter := reports.DailyFilter{From: scanFilter.From, To: scanFilter.To}

	history, err := h.service.DailyHistory(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDailyHistory(history))
}

// GetLowStock handles GET /reports/low-stock
func (h *ReportsHandler) GetLowStock(c *gin.Context) {
	threshold := h.ParseIntQuery(c, "threshold", h.lowStockThreshold)

	products, err := h.service.LowStock(c.Request.Context(), threshold)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProducts(products))
}
