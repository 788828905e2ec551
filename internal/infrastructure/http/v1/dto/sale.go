package dto

import (
	"time"

	"ferropos/internal/core/types"
	"ferropos/internal/domain/sales"
)

// SaleLineRequest is one line of a sale.
type SaleLineRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int64 `json:"quantity" binding:"required"`
}

// CommitSaleRequest carries the cart for an atomic commit.
// The cashier comes from the authenticated user, never from the body.
type CommitSaleRequest struct {
	OpeningCash types.Money       `json:"openingCash"`
	Lines       []SaleLineRequest `json:"lines" binding:"required,dive"`
}

// ToRequest converts the HTTP payload to a domain commit request.
func (r *CommitSaleRequest) ToRequest(cashierID int64) sales.CommitRequest {
	lines := make([]sales.Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, sales.Line{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return sales.CommitRequest{
		CashierID:   cashierID,
		OpeningCash: r.OpeningCash,
		Lines:       lines,
	}
}

// SaleItemResponse is one committed line on a receipt.
type SaleItemResponse struct {
	ProductID    int64       `json:"productId"`
	ProductName  string      `json:"productName,omitempty"`
	QuantitySold int64       `json:"quantitySold"`
	PricePerUnit types.Money `json:"pricePerUnit"`
	Subtotal     types.Money `json:"subtotal"`
}

// SaleResponse is the receipt for a committed sale.
type SaleResponse struct {
	ID            int64              `json:"id"`
	UserID        int64              `json:"userId"`
	SaleTimestamp time.Time          `json:"saleTimestamp"`
	OpeningCash   types.Money        `json:"openingCash"`
	TotalAmount   types.Money        `json:"totalAmount"`
	Items         []SaleItemResponse `json:"items"`
}

// FromSale maps a domain sale to its receipt shape.
func FromSale(s *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			QuantitySold: it.QuantitySold,
			PricePerUnit: it.PricePerUnit,
			Subtotal:     it.Subtotal,
		})
	}
	return SaleResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		SaleTimestamp: s.SaleTimestamp,
		OpeningCash:   s.OpeningCash,
		TotalAmount:   s.TotalAmount,
		Items:         items,
	}
}

// FromSales maps a sale slice newest first.
func FromSales(list []*sales.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromSale(s))
	}
	return out
}

// SaleHistoryQuery bounds a ledger scan. Dates are YYYY-MM-DD.
type SaleHistoryQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// PurgeResponse reports how many sales were removed.
type PurgeResponse struct {
	Purged int64 `json:"purged"`
}
