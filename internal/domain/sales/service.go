package sales

import (
	"context"
	"time"

	"ferropos/internal/core/apperror"
	"ferropos/internal/core/tx"
	"ferropos/internal/core/types"
	"ferropos/internal/domain/audit"
	"ferropos/internal/domain/catalog"
	"ferropos/pkg/logger"
)

// ReportInvalidator drops cached report data after the ledger changes.
// Invalidation is best effort; a failure never rolls back a committed sale.
type ReportInvalidator interface {
	InvalidateDay(ctx context.Context, day string) error
	InvalidateAll(ctx context.Context) error
}

// Service is the transaction coordinator. It owns the atomic unit that
// appends a sale to the ledger and decrements stock for every line.
type Service struct {
	ledger      Repository
	products    catalog.Repository
	txm         tx.Manager
	auditor     audit.Recorder
	invalidator ReportInvalidator

	// now is injectable for tests.
	now func() time.Time
}

// NewService creates the sale coordinator.
func NewService(ledger Repository, products catalog.Repository, txm tx.Manager, auditor audit.Recorder, invalidator ReportInvalidator) *Service {
	if auditor == nil {
		auditor = audit.Noop{}
	}
	return &Service{
		ledger:      ledger,
		products:    products,
		txm:         txm,
		auditor:     auditor,
		invalidator: invalidator,
		now:         time.Now,
	}
}

// CommitSale atomically records a sale and consumes stock.
//
// Duplicate product lines are merged before the stock check, so the summed
// quantity is validated against availability. Unit prices come from the
// catalog inside the same transaction that locks the product rows; callers
// cannot influence pricing. On any failure the transaction rolls back and
// neither ledger nor stock shows a trace of the attempt.
func (s *Service) CommitSale(ctx context.Context, req CommitRequest) (*Sale, error) {
	if err := req.Validate(ctx); err != nil {
		return nil, err
	}

	merged := req.mergedLines()
	var sale *Sale

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		ts := s.now().UTC()
		items := make([]SaleItem, 0, len(merged))
		total := types.Zero()

		for _, ln := range merged {
			p, err := s.products.GetForUpdate(ctx, ln.ProductID)
			if err != nil {
				return err
			}
			if !p.IsActive() {
				return apperror.NewProductInactive(p.ID, p.Name)
			}
			if ln.Quantity > p.QuantityAvailable {
				return apperror.NewInsufficientStock(p.ID, p.Name, ln.Quantity, p.QuantityAvailable)
			}

			subtotal := types.LineSubtotal(ln.Quantity, p.SalePrice)
			items = append(items, SaleItem{
				ProductID:    p.ID,
				ProductName:  p.Name,
				QuantitySold: ln.Quantity,
				PricePerUnit: p.SalePrice,
				Subtotal:     subtotal,
			})
			total = total.Add(subtotal)
		}

		sale = &Sale{
			UserID:        req.CashierID,
			SaleTimestamp: ts,
			OpeningCash:   types.RoundMoney(req.OpeningCash),
			TotalAmount:   types.RoundMoney(total),
			Items:         items,
		}
		if err := s.ledger.AppendSale(ctx, sale); err != nil {
			return err
		}

		for _, ln := range merged {
			if err := s.products.DecrementStock(ctx, ln.ProductID, ln.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale committed",
		"sale_id", sale.ID,
		"cashier_id", sale.UserID,
		"lines", len(sale.Items),
		"total", sale.TotalAmount.String(),
	)

	if s.invalidator != nil {
		day := sale.SaleTimestamp.Format("2006-01-02")
		if err := s.invalidator.InvalidateDay(ctx, day); err != nil {
			logger.Warn(ctx, "report cache invalidation failed", "day", day, "error", err)
		}
	}

	return sale, nil
}

// History scans the ledger newest first.
func (s *Service) History(ctx context.Context, filter ScanFilter) ([]*Sale, error) {
	return s.ledger.Scan(ctx, filter)
}

// PurgeHistory removes the entire ledger. Administrative and audited.
func (s *Service) PurgeHistory(ctx context.Context) (int64, error) {
	var removed int64
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		n, err := s.ledger.PurgeAll(ctx)
		if err != nil {
			return err
		}
		removed = n
		return s.auditor.Record(ctx, "sale_ledger", 0, audit.ActionPurge, map[string]any{
			"removed_sales": n,
		})
	})
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "sale ledger purged", "removed", removed)

	if s.invalidator != nil {
		if err := s.invalidator.InvalidateAll(ctx); err != nil {
			logger.Warn(ctx, "report cache invalidation failed", "error", err)
		}
	}
	return removed, nil
}
