package handlers

import (
	"github.com/gin-gonic/gin"

	"ferropos/internal/domain/audit"
	"ferropos/internal/domain/catalog"
	"ferropos/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	*BaseHandler
	service *catalog.Service
	history audit.Reader
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *catalog.Service, history audit.Reader) *ProductHandler {
	return &ProductHandler{
		BaseHandler: base,
		service:     service,
		history:     history,
	}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ProductListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	products, err := h.service.List(c.Request.Context(), catalog.ListFilter{
		Search:          q.Search,
		IncludeInactive: q.IncludeInactive,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProducts(products))
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(product))
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromProduct(product))
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(product))
}

// Deactivate handles POST /products/:id/deactivate
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "product deactivated")
}

// Reactivate handles POST /products/:id/reactivate
func (h *ProductHandler) Reactivate(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Reactivate(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "product reactivated")
}

// AuditHistory handles GET /products/:id/audit
func (h *ProductHandler) AuditHistory(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	entries, err := h.history.EntityHistory(c.Request.Context(), "product", id, int(limit))
	if err != nil {
		h.Error(c, err)
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}

	h.OK(c, entries)
}

// AdjustStock handles PUT /products/:id/stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.AdjustStock(c.Request.Context(), id, req.Quantity); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "stock adjusted")
}
