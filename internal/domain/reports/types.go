// Package reports derives daily sales and profit summaries from the sale
// ledger. Aggregates are computed on demand and never persisted.
package reports

import (
	"time"

	"ferropos/internal/core/types"
)

// DailyFilter bounds the ledger scan by commit timestamp. Nil bounds are open.
// From is inclusive, To is exclusive.
type DailyFilter struct {
	From *time.Time
	To   *time.Time
}

// LedgerRow is one flat joined row of the ledger scan: a sale item with its
// header fields and the product's current purchase price.
type LedgerRow struct {
	SaleID        int64       `db:"sale_id"`
	SaleTimestamp time.Time   `db:"sale_timestamp"`
	OpeningCash   types.Money `db:"opening_cash"`
	ProductID     int64       `db:"product_id"`
	ProductName   string      `db:"product_name"`
	QuantitySold  int64       `db:"quantity_sold"`
	Subtotal      types.Money `db:"subtotal"`
	PurchasePrice types.Money `db:"purchase_price"`
}

// DailyLineSummary sums one product's movement within a calendar day.
type DailyLineSummary struct {
	ProductID    int64       `json:"productId"`
	ProductName  string      `json:"productName"`
	QuantitySold int64       `json:"quantitySold"`
	SalesValue   types.Money `json:"salesValue"`
	CostValue    types.Money `json:"costValue"`
}

// DailyAggregate summarizes one calendar day of trading.
//
// OpeningCash is the value carried by the first sale encountered for the
// date during the newest-first ledger scan. CostValue uses the product's
// purchase price as it stands at report time, not at sale time; reports over
// old data shift when purchase prices are edited.
type DailyAggregate struct {
	Date         string             `json:"date"`
	OpeningCash  types.Money        `json:"openingCash"`
	Lines        []DailyLineSummary `json:"lines"`
	TotalRevenue types.Money        `json:"totalRevenue"`
	TotalCost    types.Money        `json:"totalCost"`
	NetProfit    types.Money        `json:"netProfit"`
}

// DailyHistory is the full report, newest day first.
type DailyHistory struct {
	Days []DailyAggregate `json:"days"`
}
