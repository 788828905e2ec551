// Package sales_repo provides the PostgreSQL implementation of the sale
// ledger repository.
package sales_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ferropos/internal/core/apperror"
	"ferropos/internal/domain/sales"
	"ferropos/internal/infrastructure/storage/postgres"
)

const (
	salesTable     = "sales"
	saleItemsTable = "sale_items"
)

// LedgerRepo implements sales.Repository.
type LedgerRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewLedgerRepo creates a new ledger repository.
func NewLedgerRepo(txm *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// AppendSale writes the header and all items inside the caller's transaction.
// Items go through the COPY protocol; their generated IDs are filled on later
// scans, not here.
func (r *LedgerRepo) AppendSale(ctx context.Context, sale *sales.Sale) error {
	q := r.builder.Insert(salesTable).
		Columns("user_id", "sale_timestamp", "opening_cash", "total_amount").
		Values(sale.UserID, sale.SaleTimestamp, sale.OpeningCash, sale.TotalAmount).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&sale.ID); err != nil {
		return apperror.NewDatabase("append sale", err)
	}

	columns := []string{"sale_id", "product_id", "quantity_sold", "price_per_unit", "subtotal"}
	rows := make([][]any, 0, len(sale.Items))
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
		item := sale.Items[i]
		rows = append(rows, []any{item.SaleID, item.ProductID, item.QuantitySold, item.PricePerUnit, item.Subtotal})
	}

	if _, err := postgres.CopyInto(ctx, r.txm, saleItemsTable, columns, rows); err != nil {
		return apperror.NewDatabase("append sale items", err)
	}
	return nil
}

// Scan returns sales newest first with items and product names attached.
func (r *LedgerRepo) Scan(ctx context.Context, filter sales.ScanFilter) ([]*sales.Sale, error) {
	q := r.builder.Select("id", "user_id", "sale_timestamp", "opening_cash", "total_amount").
		From(salesTable)

	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"sale_timestamp": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.Lt{"sale_timestamp": *filter.To})
	}
	q = q.OrderBy("sale_timestamp DESC", "id DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var headers []*sales.Sale
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &headers, sql, args...); err != nil {
		return nil, apperror.NewDatabase("scan sales", err)
	}
	if len(headers) == 0 {
		return headers, nil
	}

	ids := make([]int64, 0, len(headers))
	byID := make(map[int64]*sales.Sale, len(headers))
	for _, h := range headers {
		ids = append(ids, h.ID)
		byID[h.ID] = h
	}

	itemSQL := `
		SELECT si.id, si.sale_id, si.product_id, p.name AS product_name,
		       si.quantity_sold, si.price_per_unit, si.subtotal
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ANY($1)
		ORDER BY si.sale_id, p.name ASC
	`

	var items []sales.SaleItem
	if err := pgxscan.Select(ctx, querier, &items, itemSQL, ids); err != nil {
		return nil, apperror.NewDatabase("scan sale items", err)
	}
	for _, item := range items {
		if h, ok := byID[item.SaleID]; ok {
			h.Items = append(h.Items, item)
		}
	}
	return headers, nil
}

// PurgeAll removes the entire ledger: items first, then headers.
func (r *LedgerRepo) PurgeAll(ctx context.Context) (int64, error) {
	querier := r.txm.GetQuerier(ctx)

	var count int64
	if err := querier.QueryRow(ctx, "SELECT COUNT(*) FROM sales").Scan(&count); err != nil {
		return 0, apperror.NewDatabase("count sales", err)
	}

	if _, err := querier.Exec(ctx, "DELETE FROM sale_items"); err != nil {
		return 0, apperror.NewDatabase("purge sale items", err)
	}
	if _, err := querier.Exec(ctx, "DELETE FROM sales"); err != nil {
		return 0, apperror.NewDatabase("purge sales", err)
	}
	return count, nil
}

// Ensure interface compliance.
var _ sales.Repository = (*LedgerRepo)(nil)
