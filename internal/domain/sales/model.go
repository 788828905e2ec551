// Package sales provides the append-only sale ledger and the transaction
// coordinator that commits a sale atomically with its stock decrements.
package sales

import (
	"context"
	"sort"
	"time"

	"ferropos/internal/core/apperror"
	"ferropos/internal/core/types"
)

// Sale is one committed transaction: a header plus its line items.
// Ledger rows are immutable once written.
type Sale struct {
	ID            int64       `db:"id" json:"id"`
	UserID        int64       `db:"user_id" json:"userId"`
	SaleTimestamp time.Time   `db:"sale_timestamp" json:"saleTimestamp"`
	OpeningCash   types.Money `db:"opening_cash" json:"openingCash"`
	TotalAmount   types.Money `db:"total_amount" json:"totalAmount"`

	Items []SaleItem `db:"-" json:"items"`
}

// SaleItem is one line of a sale. PricePerUnit is the catalog sale price
// captured at commit time; later price changes never rewrite it.
type SaleItem struct {
	ID           int64       `db:"id" json:"id"`
	SaleID       int64       `db:"sale_id" json:"saleId"`
	ProductID    int64       `db:"product_id" json:"productId"`
	ProductName  string      `db:"product_name" json:"productName"`
	QuantitySold int64       `db:"quantity_sold" json:"quantitySold"`
	PricePerUnit types.Money `db:"price_per_unit" json:"pricePerUnit"`
	Subtotal     types.Money `db:"subtotal" json:"subtotal"`
}

// Line is one requested sale position. The unit price is never part of the
// request; it is resolved from the catalog inside the commit transaction.
type Line struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// CommitRequest carries everything needed to commit a sale.
type CommitRequest struct {
	CashierID   int64
	OpeningCash types.Money
	Lines       []Line
}

// Validate checks the request shape before any storage access.
func (r *CommitRequest) Validate(ctx context.Context) error {
	if r.CashierID <= 0 {
		return apperror.NewValidation("cashier id is required").
			WithDetail("field", "cashierId")
	}
	if r.OpeningCash.IsNegative() {
		return apperror.NewValidation("opening cash cannot be negative").
			WithDetail("field", "openingCash").
			WithDetail("value", r.OpeningCash.String())
	}
	if len(r.Lines) == 0 {
		return apperror.NewEmptySale()
	}
	for _, ln := range r.Lines {
		if ln.ProductID <= 0 || ln.Quantity <= 0 {
			return apperror.NewInvalidQuantity(ln.ProductID, ln.Quantity)
		}
	}
	return nil
}

// mergedLines collapses duplicate product references by summing quantities
// and returns the result ordered by product ID ascending. The summed
// quantity is what gets checked against available stock, and the fixed lock
// order keeps concurrent commits from deadlocking on each other.
func (r *CommitRequest) mergedLines() []Line {
	byProduct := make(map[int64]int64, len(r.Lines))
	for _, ln := range r.Lines {
		byProduct[ln.ProductID] += ln.Quantity
	}
	merged := make([]Line, 0, len(byProduct))
	for id, qty := range byProduct {
		merged = append(merged, Line{ProductID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ProductID < merged[j].ProductID })
	return merged
}
