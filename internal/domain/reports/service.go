package reports

import (
	"context"
	"sort"

	"ferropos/internal/core/apperror"
	"ferropos/internal/core/types"
	"ferropos/internal/domain/catalog"
	"ferropos/pkg/logger"
)

// Cache stores the unbounded daily history between ledger changes.
// Bounded queries always hit storage.
type Cache interface {
	GetDailyHistory(ctx context.Context) (*DailyHistory, bool)
	SetDailyHistory(ctx context.Context, h *DailyHistory) error
}

// Service provides report generation operations.
type Service struct {
	repo     Repository
	products catalog.Repository
	cache    Cache
}

// NewService creates a new reports service. cache may be nil.
func NewService(repo Repository, products catalog.Repository, cache Cache) *Service {
	return &Service{repo: repo, products: products, cache: cache}
}

// DailyHistory aggregates the ledger into per-day summaries, newest day
// first. Storage errors surface as-is; no partial report is ever returned.
func (s *Service) DailyHistory(ctx context.Context, filter DailyFilter) (*DailyHistory, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperror.NewValidation("from must not be after to").
			WithDetail("from", filter.From).
			WithDetail("to", filter.To)
	}

	cacheable := s.cache != nil && filter.From == nil && filter.To == nil
	if cacheable {
		if h, ok := s.cache.GetDailyHistory(ctx); ok {
			return h, nil
		}
	}

	rows, err := s.repo.FetchLedgerRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	history := aggregate(rows)

	if cacheable {
		if err := s.cache.SetDailyHistory(ctx, history); err != nil {
			logger.Warn(ctx, "report cache write failed", "error", err)
		}
	}
	return history, nil
}

// LowStock returns active products at or below threshold, the ones worth
// reordering first.
func (s *Service) LowStock(ctx context.Context, threshold int64) ([]*catalog.Product, error) {
	if threshold < 0 {
		return nil, apperror.NewValidation("threshold cannot be negative").
			WithDetail("value", threshold)
	}
	return s.products.FindLowStock(ctx, threshold)
}

// aggregate folds newest-first ledger rows into daily summaries.
// The first row seen for a date fixes that day's opening cash.
func aggregate(rows []LedgerRow) *DailyHistory {
	type dayAcc struct {
		openingCash types.Money
		byProduct   map[int64]*DailyLineSummary
	}

	days := make(map[string]*dayAcc)
	var order []string

	for _, row := range rows {
		day := row.SaleTimestamp.UTC().Format("2006-01-02")
		acc, ok := days[day]
		if !ok {
			acc = &dayAcc{
				openingCash: row.OpeningCash,
				byProduct:   make(map[int64]*DailyLineSummary),
			}
			days[day] = acc
			order = append(order, day)
		}

		line, ok := acc.byProduct[row.ProductID]
		if !ok {
			line = &DailyLineSummary{
				ProductID:   row.ProductID,
				ProductName: row.ProductName,
				SalesValue:  types.Zero(),
				CostValue:   types.Zero(),
			}
			acc.byProduct[row.ProductID] = line
		}
		line.QuantitySold += row.QuantitySold
		line.SalesValue = line.SalesValue.Add(row.Subtotal)
		line.CostValue = line.CostValue.Add(types.LineSubtotal(row.QuantitySold, row.PurchasePrice))
	}

	history := &DailyHistory{Days: make([]DailyAggregate, 0, len(order))}
	for _, day := range order {
		acc := days[day]

		lines := make([]DailyLineSummary, 0, len(acc.byProduct))
		for _, l := range acc.byProduct {
			l.SalesValue = types.RoundMoney(l.SalesValue)
			l.CostValue = types.RoundMoney(l.CostValue)
			lines = append(lines, *l)
		}
		sort.Slice(lines, func(i, j int) bool { return lines[i].ProductName < lines[j].ProductName })

		revenue := types.Zero()
		cost := types.Zero()
		for _, l := range lines {
			revenue = revenue.Add(l.SalesValue)
			cost = cost.Add(l.CostValue)
		}
		revenue = types.RoundMoney(revenue)
		cost = types.RoundMoney(cost)

		history.Days = append(history.Days, DailyAggregate{
			Date:         day,
			OpeningCash:  acc.openingCash,
			Lines:        lines,
			TotalRevenue: revenue,
			TotalCost:    cost,
			NetProfit:    types.RoundMoney(revenue.Sub(cost)),
		})
	}
	return history
}
