package sales

import (
	"context"
	"time"
)

// ScanFilter bounds a ledger scan by commit timestamp. Nil bounds are open.
// From is inclusive, To is exclusive.
type ScanFilter struct {
	From *time.Time
	To   *time.Time
}

// Repository is the persistence contract for the sale ledger.
type Repository interface {
	// AppendSale writes the header and all items, filling in generated IDs.
	// Must be called inside a transaction opened by tx.Manager.
	AppendSale(ctx context.Context, sale *Sale) error

	// Scan returns sales newest first with items and product names attached.
	Scan(ctx context.Context, filter ScanFilter) ([]*Sale, error)

	// PurgeAll removes the entire ledger and reports how many sales went.
	PurgeAll(ctx context.Context) (int64, error)
}
