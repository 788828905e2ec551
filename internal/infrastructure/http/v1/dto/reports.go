package dto

import (
	"ferropos/internal/core/types"
	"ferropos/internal/domain/reports"
)

// DailyHistoryQuery bounds the report range. Dates are YYYY-MM-DD.
type DailyHistoryQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// DailyLineResponse is one product's totals within a day.
type DailyLineResponse struct {
	ProductID    int64       `json:"productId"`
	ProductName  string      `json:"productName"`
	QuantitySold int64       `json:"quantitySold"`
	SalesValue   types.Money `json:"salesValue"`
	CostValue    types.Money `json:"costValue"`
}

// DailyAggregateResponse is one business day's summary.
type DailyAggregateResponse struct {
	Date         string              `json:"date"`
	OpeningCash  types.Money         `json:"openingCash"`
	TotalRevenue types.Money         `json:"totalRevenue"`
	TotalCost    types.Money         `json:"totalCost"`
	NetProfit    types.Money         `json:"netProfit"`
	Lines        []DailyLineResponse `json:"lines"`
}

// DailyHistoryResponse lists day summaries newest first.
type DailyHistoryResponse struct {
	Days []DailyAggregateResponse `json:"days"`
}

// FromDailyHistory maps the aggregated report to its API shape.
func FromDailyHistory(h *reports.DailyHistory) DailyHistoryResponse {
	days := make([]DailyAggregateResponse, 0, len(h.Days))
	for _, d := range h.Days {
		lines := make([]DailyLineResponse, 0, len(d.Lines))
		for _, l := range d.Lines {
			lines = append(lines, DailyLineResponse{
				ProductID:    l.ProductID,
				ProductName:  l.ProductName,
				QuantitySold: l.QuantitySold,
				SalesValue:   l.SalesValue,
				CostValue:    l.CostValue,
			})
		}
		days = append(days, DailyAggregateResponse{
			Date:         d.Date,
			OpeningCash:  d.OpeningCash,
			TotalRevenue: d.TotalRevenue,
			TotalCost:    d.TotalCost,
			NetProfit:    d.NetProfit,
			Lines:        lines,
		})
	}
	return DailyHistoryResponse{Days: days}
}
