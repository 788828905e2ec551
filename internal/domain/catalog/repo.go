package catalog

import (
	"context"
)

// ListFilter narrows catalog listings.
type ListFilter struct {
	// Search matches a case-insensitive substring of the product name.
	Search string

	// IncludeInactive returns deactivated products too (management view).
	// The sales view keeps it false.
	IncludeInactive bool
}

// Repository defines persistence operations for products.
//
// GetForUpdate and DecrementStock must be called inside a transaction opened
// by tx.Manager; they implement the atomic read-modify-write the sale commit
// path relies on.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByName(ctx context.Context, name string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)

	// GetForUpdate loads a product with a pessimistic row lock.
	GetForUpdate(ctx context.Context, id int64) (*Product, error)

	// DecrementStock atomically subtracts qty from quantity_available,
	// guarded so the result can never go negative. Returns a stock
	// conflict error when the guard rejects the update.
	DecrementStock(ctx context.Context, id int64, qty int64) error

	// SetStatus flips the lifecycle state.
	SetStatus(ctx context.Context, id int64, status Status) error

	// SetQuantity overwrites stock for administrative correction.
	SetQuantity(ctx context.Context, id int64, quantity int64) error

	// FindLowStock returns active products at or below threshold,
	// ordered by quantity ascending then name ascending.
	FindLowStock(ctx context.Context, threshold int64) ([]*Product, error)
}
