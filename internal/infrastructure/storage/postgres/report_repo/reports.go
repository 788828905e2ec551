// Package report_repo provides PostgreSQL data access for report generation.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"ferropos/internal/core/apperror"
	"ferropos/internal/domain/reports"
	"ferropos/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

// FetchLedgerRows returns the flat joined ledger scan the daily aggregation
// runs on. Purchase price is the product's current value, so cost figures
// follow later price edits.
func (r *ReportRepo) FetchLedgerRows(ctx context.Context, filter reports.DailyFilter) ([]reports.LedgerRow, error) {
	sql := `
		SELECT s.id AS sale_id,
		       s.sale_timestamp,
		       s.opening_cash,
		       si.product_id,
		       p.name AS product_name,
		       si.quantity_sold,
		       si.subtotal,
		       p.purchase_price
		FROM sales s
		JOIN sale_items si ON si.sale_id = s.id
		JOIN products p ON p.id = si.product_id
	`

	var args []any
	where := ""
	argIndex := 1
	if filter.From != nil {
		where = fmt.Sprintf(" WHERE s.sale_timestamp >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		if where == "" {
			where = fmt.Sprintf(" WHERE s.sale_timestamp < $%d", argIndex)
		} else {
			where += fmt.Sprintf(" AND s.sale_timestamp < $%d", argIndex)
		}
		args = append(args, *filter.To)
	}

	sql += where + `
		ORDER BY s.sale_timestamp DESC, s.id ASC, p.name ASC
	`

	var rows []reports.LedgerRow
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase("fetch ledger rows", err)
	}
	return rows, nil
}

// Ensure interface compliance.
var _ reports.Repository = (*ReportRepo)(nil)
