// Package catalog provides the product catalog: the priced, stocked items
// the point of sale can sell.
package catalog

import (
	"context"
	"strings"
	"time"

	"ferropos/internal/core/apperror"
	"ferropos/internal/core/types"
)

// Status defines the product lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Product represents a sellable catalog item.
//
// QuantityAvailable is mutated only by administrative adjustment and by the
// sale commit path. It can never go below zero.
type Product struct {
	ID                int64       `db:"id" json:"id"`
	Name              string      `db:"name" json:"name"`
	QuantityAvailable int64       `db:"quantity_available" json:"quantityAvailable"`
	SalePrice         types.Money `db:"sale_price" json:"salePrice"`
	PurchasePrice     types.Money `db:"purchase_price" json:"purchasePrice"`
	Status            Status      `db:"status" json:"status"`

	// Version supports optimistic locking on administrative updates.
	Version   int64     `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewProduct creates an active product with required fields.
func NewProduct(name string, initialStock int64, salePrice, purchasePrice types.Money) *Product {
	return &Product{
		Name:              strings.TrimSpace(name),
		QuantityAvailable: initialStock,
		SalePrice:         types.RoundMoney(salePrice),
		PurchasePrice:     types.RoundMoney(purchasePrice),
		Status:            StatusActive,
		Version:           1,
	}
}

// IsActive reports whether the product can appear on new sales.
func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}

// Validate checks catalog invariants.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "name")
	}
	if p.QuantityAvailable < 0 {
		return apperror.NewValidation("quantity available cannot be negative").
			WithDetail("field", "quantityAvailable").
			WithDetail("value", p.QuantityAvailable)
	}
	if !p.SalePrice.IsPositive() {
		return apperror.NewValidation("sale price must be positive").
			WithDetail("field", "salePrice").
			WithDetail("value", p.SalePrice.String())
	}
	if p.PurchasePrice.IsNegative() {
		return apperror.NewValidation("purchase price cannot be negative").
			WithDetail("field", "purchasePrice").
			WithDetail("value", p.PurchasePrice.String())
	}
	if p.Status != StatusActive && p.Status != StatusInactive {
		return apperror.NewValidation("invalid product status").
			WithDetail("field", "status").
			WithDetail("value", string(p.Status))
	}
	return nil
}
