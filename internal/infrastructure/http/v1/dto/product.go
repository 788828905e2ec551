package dto

import (
	"time"

	"ferropos/internal/core/types"
	"ferropos/internal/domain/catalog"
)

// CreateProductRequest for registering a new product.
// Prices accept JSON numbers or strings; decimal parsing keeps them exact.
type CreateProductRequest struct {
	Name          string      `json:"name" binding:"required"`
	InitialStock  int64       `json:"initialStock" binding:"min=0"`
	SalePrice     types.Money `json:"salePrice" binding:"required"`
	PurchasePrice types.Money `json:"purchasePrice"`
}

// ToInput converts the request to a service input.
func (r *CreateProductRequest) ToInput() catalog.CreateInput {
	return catalog.CreateInput{
		Name:          r.Name,
		InitialStock:  r.InitialStock,
		SalePrice:     r.SalePrice,
		PurchasePrice: r.PurchasePrice,
	}
}

// UpdateProductRequest for field updates. Nil fields are left untouched.
type UpdateProductRequest struct {
	Name          *string      `json:"name"`
	SalePrice     *types.Money `json:"salePrice"`
	PurchasePrice *types.Money `json:"purchasePrice"`
}

// ToInput converts the request to a service input.
func (r *UpdateProductRequest) ToInput() catalog.UpdateInput {
	return catalog.UpdateInput{
		Name:          r.Name,
		SalePrice:     r.SalePrice,
		PurchasePrice: r.PurchasePrice,
	}
}

// AdjustStockRequest overwrites quantity_available.
type AdjustStockRequest struct {
	Quantity int64 `json:"quantity" binding:"min=0"`
}

// ProductListQuery filters product listings.
type ProductListQuery struct {
	Search          string `form:"search"`
	IncludeInactive bool   `form:"includeInactive"`
}

// ProductResponse is the API shape of a product.
type ProductResponse struct {
	ID                int64       `json:"id"`
	Name              string      `json:"name"`
	QuantityAvailable int64       `json:"quantityAvailable"`
	SalePrice         types.Money `json:"salePrice"`
	PurchasePrice     types.Money `json:"purchasePrice"`
	Status            string      `json:"status"`
	Version           int64       `json:"version"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// FromProduct maps a domain product to its API shape.
func FromProduct(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		QuantityAvailable: p.QuantityAvailable,
		SalePrice:         p.SalePrice,
		PurchasePrice:     p.PurchasePrice,
		Status:            string(p.Status),
		Version:           p.Version,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// FromProducts maps a product slice.
func FromProducts(products []*catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}
