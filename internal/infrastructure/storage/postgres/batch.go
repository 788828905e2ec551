package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CopyInto bulk-inserts rows into table using the COPY protocol. It refuses
// to run outside a transaction: sale item rows must ride the same
// transaction as their header so a failed commit removes both.
func CopyInto(ctx context.Context, txm *TxManager, table string, columns []string, rows [][]any) (int64, error) {
	tx := txm.GetTx(ctx)
	if tx == nil {
		return 0, fmt.Errorf("copy into %s requires an open transaction", table)
	}
	return tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
}
