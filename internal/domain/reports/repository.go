package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	// FetchLedgerRows returns sale items joined with headers and current
	// product purchase prices, ordered by sale timestamp descending, then
	// sale ID, then product name.
	FetchLedgerRows(ctx context.Context, filter DailyFilter) ([]LedgerRow, error)
}
