// Package catalog_repo provides the PostgreSQL implementation of the
// product catalog repository.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ferropos/internal/core/apperror"
	"ferropos/internal/domain/catalog"
	"ferropos/internal/infrastructure/storage/postgres"
)

const productsTable = "products"

var productColumns = postgres.ExtractDBColumns[catalog.Product]()

// ProductRepo implements catalog.Repository.
type ProductRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a product and fills in generated fields.
func (r *ProductRepo) Create(ctx context.Context, p *catalog.Product) error {
	q := r.builder.Insert(productsTable).
		Columns("name", "quantity_available", "sale_price", "purchase_price", "status", "version").
		Values(p.Name, p.QuantityAvailable, p.SalePrice, p.PurchasePrice, p.Status, p.Version).
		Suffix("RETURNING id, created_at, updated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return apperror.NewDatabase("create product", err)
	}
	return nil
}

// Update writes mutable fields under optimistic locking.
func (r *ProductRepo) Update(ctx context.Context, p *catalog.Product) error {
	q := r.builder.Update(productsTable).
		Set("name", p.Name).
		Set("sale_price", p.SalePrice).
		Set("purchase_price", p.PurchasePrice).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID, "version": p.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase("update product", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, p.ID); getErr != nil {
			return getErr
		}
		return apperror.NewConcurrentModification("product", p.ID)
	}
	p.Version++
	return nil
}

// GetByID retrieves a product.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*catalog.Product, error) {
	q := r.builder.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p catalog.Product
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", id)
		}
		return nil, apperror.NewDatabase("get product", err)
	}
	return &p, nil
}

// GetByName retrieves a product by its unique name.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*catalog.Product, error) {
	q := r.builder.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p catalog.Product
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", name)
		}
		return nil, apperror.NewDatabase("get product by name", err)
	}
	return &p, nil
}

// GetForUpdate retrieves a product with a pessimistic row lock.
// Must run inside a transaction.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*catalog.Product, error) {
	sql := `
		SELECT id, name, quantity_available, sale_price, purchase_price,
		       status, version, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var p catalog.Product
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &p, sql, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", id)
		}
		return nil, apperror.NewDatabase("lock product", err)
	}
	return &p, nil
}

// List retrieves products ordered by name.
func (r *ProductRepo) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Product, error) {
	q := r.builder.Select(productColumns...).From(productsTable)

	if !filter.IncludeInactive {
		q = q.Where(squirrel.Eq{"status": catalog.StatusActive})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + filter.Search + "%"})
	}
	q = q.OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var products []*catalog.Product
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &products, sql, args...); err != nil {
		return nil, apperror.NewDatabase("list products", err)
	}
	return products, nil
}

// DecrementStock subtracts qty with a guard that keeps stock non-negative.
// A rejected guard means another commit got there first.
func (r *ProductRepo) DecrementStock(ctx context.Context, id int64, qty int64) error {
	sql := `
		UPDATE products
		SET quantity_available = quantity_available - $1, updated_at = NOW()
		WHERE id = $2 AND quantity_available >= $1
	`

	querier := r.txm.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, qty, id)
	if err != nil {
		return apperror.NewDatabase("decrement stock", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewStockConflict(id)
	}
	return nil
}

// SetStatus flips the lifecycle state.
func (r *ProductRepo) SetStatus(ctx context.Context, id int64, status catalog.Status) error {
	q := r.builder.Update(productsTable).
		Set("status", status).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase("set product status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", id)
	}
	return nil
}

// SetQuantity overwrites stock for administrative correction.
func (r *ProductRepo) SetQuantity(ctx context.Context, id int64, quantity int64) error {
	q := r.builder.Update(productsTable).
		Set("quantity_available", quantity).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase("set product quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", id)
	}
	return nil
}

// FindLowStock returns active products at or below threshold.
func (r *ProductRepo) FindLowStock(ctx context.Context, threshold int64) ([]*catalog.Product, error) {
	q := r.builder.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"status": catalog.StatusActive}).
		Where(squirrel.LtOrEq{"quantity_available": threshold}).
		OrderBy("quantity_available ASC", "name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var products []*catalog.Product
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &products, sql, args...); err != nil {
		return nil, apperror.NewDatabase("find low stock", err)
	}
	return products, nil
}

// Ensure interface compliance.
var _ catalog.Repository = (*ProductRepo)(nil)
