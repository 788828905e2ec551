package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"ferropos/internal/core/apperror"
	"ferropos/internal/domain/sales"
	"ferropos/internal/infrastructure/http/v1/dto"
)

const dateLayout = "2006-01-02"

// SalesHandler handles sale commit and ledger endpoints.
type SalesHandler struct {
	*BaseHandler
	service *sales.Service
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(base *BaseHandler, service *sales.Service) *SalesHandler {
	return &SalesHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Commit handles POST /sales
func (h *SalesHandler) Commit(c *gin.Context) {
	var req dto.CommitSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale, err := h.service.CommitSale(c.Request.Context(), req.ToRequest(h.GetUserID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromSale(sale))
}

// History handles GET /sales
func (h *SalesHandler) History(c *gin.Context) {
	var q dto.SaleHistoryQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter, err := scanFilterFromQuery(q.From, q.To)
	if err != nil {
		h.Error(c, err)
		return
	}

	list, err := h.service.History(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSales(list))
}

// Purge handles DELETE /sales
func (h *SalesHandler) Purge(c *gin.Context) {
	purged, err := h.service.PurgeHistory(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.PurgeResponse{Purged: purged})
}

// scanFilterFromQuery parses YYYY-MM-DD bounds into an inclusive UTC range.
// The upper bound covers the whole day named by "to".
func scanFilterFromQuery(fromStr, toStr string) (sales.ScanFilter, error) {
	var filter sales.ScanFilter

	if fromStr != "" {
		from, err := time.ParseInLocation(dateLayout, fromStr, time.UTC)
		if err != nil {
			return filter, apperror.NewValidation("invalid from date, expected YYYY-MM-DD").
				WithDetail("value", fromStr)
		}
		filter.From = &from
	}

	if toStr != "" {
		to, err := time.ParseInLocation(dateLayout, toStr, time.UTC)
		if err != nil {
			return filter, apperror.NewValidation("invalid to date, expected YYYY-MM-DD").
				WithDetail("value", toStr)
		}
		end := to.Add(24 * time.Hour)
		filter.To = &end
	}

	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return filter, apperror.NewValidation("from date is after to date")
	}

	return filter, nil
}
