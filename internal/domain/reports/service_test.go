package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferropos/internal/core/apperror"
	"ferropos/internal/core/types"
	"ferropos/internal/domain/catalog"
)

type stubLedgerRepo struct {
	rows    []LedgerRow
	fetched int
}

func (r *stubLedgerRepo) FetchLedgerRows(context.Context, DailyFilter) ([]LedgerRow, error) {
	r.fetched++
	return r.rows, nil
}

type stubProductRepo struct {
	catalog.Repository
	lowStock []*catalog.Product
}

func (r *stubProductRepo) FindLowStock(context.Context, int64) ([]*catalog.Product, error) {
	return r.lowStock, nil
}

type memCache struct {
	history *DailyHistory
	sets    int
}

func (c *memCache) GetDailyHistory(context.Context) (*DailyHistory, bool) {
	if c.history == nil {
		return nil, false
	}
	return c.history, true
}

func (c *memCache) SetDailyHistory(_ context.Context, h *DailyHistory) error {
	c.history = h
	c.sets++
	return nil
}

func ts(day string, hour int) time.Time {
	d, _ := time.ParseInLocation("2006-01-02", day, time.UTC)
	return d.Add(time.Duration(hour) * time.Hour)
}

// newestFirstRows mirrors the storage ordering: timestamp descending.
func newestFirstRows() []LedgerRow {
	return []LedgerRow{
		// 2024-03-16, one sale of two products
		{SaleID: 3, SaleTimestamp: ts("2024-03-16", 18), OpeningCash: types.MustMoney("200.00"),
			ProductID: 2, ProductName: "Gloves", QuantitySold: 2, Subtotal: types.MustMoney("9.98"), PurchasePrice: types.MustMoney("2.20")},
		{SaleID: 3, SaleTimestamp: ts("2024-03-16", 18), OpeningCash: types.MustMoney("200.00"),
			ProductID: 1, ProductName: "Hammer", QuantitySold: 1, Subtotal: types.MustMoney("25.50"), PurchasePrice: types.MustMoney("14.00")},
		// 2024-03-15, two sales; the 17h sale is seen first in the scan
		{SaleID: 2, SaleTimestamp: ts("2024-03-15", 17), OpeningCash: types.MustMoney("150.00"),
			ProductID: 1, ProductName: "Hammer", QuantitySold: 2, Subtotal: types.MustMoney("51.00"), PurchasePrice: types.MustMoney("14.00")},
		{SaleID: 1, SaleTimestamp: ts("2024-03-15", 9), OpeningCash: types.MustMoney("100.00"),
			ProductID: 1, ProductName: "Hammer", QuantitySold: 1, Subtotal: types.MustMoney("25.50"), PurchasePrice: types.MustMoney("14.00")},
	}
}

func TestDailyHistoryAggregation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&stubLedgerRepo{rows: newestFirstRows()}, &stubProductRepo{}, nil)

	history, err := svc.DailyHistory(ctx, DailyFilter{})
	require.NoError(t, err)
	require.Len(t, history.Days, 2)

	// Newest day first
	day1 := history.Days[0]
	assert.Equal(t, "2024-03-16", day1.Date)
	assert.True(t, day1.OpeningCash.Equal(types.MustMoney("200.00")))
	assert.True(t, day1.TotalRevenue.Equal(types.MustMoney("35.48")), "revenue %s", day1.TotalRevenue)
	assert.True(t, day1.TotalCost.Equal(types.MustMoney("18.40")), "cost %s", day1.TotalCost)
	assert.True(t, day1.NetProfit.Equal(types.MustMoney("17.08")), "profit %s", day1.NetProfit)

	// Lines ordered by product name ascending
	require.Len(t, day1.Lines, 2)
	assert.Equal(t, "Gloves", day1.Lines[0].ProductName)
	assert.Equal(t, "Hammer", day1.Lines[1].ProductName)

	day2 := history.Days[1]
	assert.Equal(t, "2024-03-15", day2.Date)
	assert.True(t, day2.TotalRevenue.Equal(types.MustMoney("76.50")))
	assert.True(t, day2.TotalCost.Equal(types.MustMoney("42.00")))
	assert.True(t, day2.NetProfit.Equal(types.MustMoney("34.50")))

	require.Len(t, day2.Lines, 1)
	assert.Equal(t, int64(3), day2.Lines[0].QuantitySold)
}

func TestDailyHistory_OpeningCashFromFirstScannedSale(t *testing.T) {
	// The scan runs newest first, so the day's opening cash comes from its
	// latest sale's header.
	ctx := context.Background()
	svc := NewService(&stubLedgerRepo{rows: newestFirstRows()}, &stubProductRepo{}, nil)

	history, err := svc.DailyHistory(ctx, DailyFilter{})
	require.NoError(t, err)

	day2 := history.Days[1]
	assert.True(t, day2.OpeningCash.Equal(types.MustMoney("150.00")), "opening cash %s", day2.OpeningCash)
}

func TestDailyHistory_EmptyLedger(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&stubLedgerRepo{}, &stubProductRepo{}, nil)

	history, err := svc.DailyHistory(ctx, DailyFilter{})
	require.NoError(t, err)
	assert.Empty(t, history.Days)
}

func TestDailyHistory_InvalidRange(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&stubLedgerRepo{}, &stubProductRepo{}, nil)

	from := ts("2024-03-16", 0)
	to := ts("2024-03-15", 0)
	_, err := svc.DailyHistory(ctx, DailyFilter{From: &from, To: &to})

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestDailyHistory_CachesUnboundedQueries(t *testing.T) {
	ctx := context.Background()
	repo := &stubLedgerRepo{rows: newestFirstRows()}
	cache := &memCache{}
	svc := NewService(repo, &stubProductRepo{}, cache)

	_, err := svc.DailyHistory(ctx, DailyFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.fetched)
	assert.Equal(t, 1, cache.sets)

	// Second unbounded call is served from cache
	_, err = svc.DailyHistory(ctx, DailyFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.fetched)

	// Bounded calls bypass the cache
	from := ts("2024-03-15", 0)
	_, err = svc.DailyHistory(ctx, DailyFilter{From: &from})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.fetched)
}

func TestLowStock(t *testing.T) {
	ctx := context.Background()
	products := []*catalog.Product{{ID: 1, Name: "Hammer", QuantityAvailable: 2}}
	svc := NewService(&stubLedgerRepo{}, &stubProductRepo{lowStock: products}, nil)

	got, err := svc.LowStock(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, products, got)

	_, err = svc.LowStock(ctx, -1)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
