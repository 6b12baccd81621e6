package dto

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DistributionParams defines query parameters for a distribution report.
type DistributionParams struct {
	Kind       string `form:"kind" binding:"required,oneof=INCOME EXPENSE"`
	GroupBy    string `form:"groupBy" binding:"omitempty,oneof=category source"`
	WindowDays int    `form:"windowDays,default=30" binding:"min=1,max=3650"`
}

// MonthlySeriesParams defines query parameters for a monthly series report.
type MonthlySeriesParams struct {
	Kind       string `form:"kind" binding:"required,oneof=INCOME EXPENSE"`
	WindowDays int    `form:"windowDays,default=180" binding:"min=1,max=3650"`
}

// DistributionEntryResponse is one group of a distribution.
type DistributionEntryResponse struct {
	Key        string          `json:"key"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// DistributionResponse represents a distribution report.
type DistributionResponse struct {
	CurrencyCode       string                      `json:"currencyCode"`
	GrandTotal         decimal.Decimal             `json:"grandTotal"`
	Entries            []DistributionEntryResponse `json:"entries"`
	SkippedConversions int                         `json:"skippedConversions"`
	Degraded           bool                        `json:"degraded"`
}

// ToDistributionResponse converts a domain.Distribution to DistributionResponse DTO.
func ToDistributionResponse(d *domain.Distribution) DistributionResponse {
	entries := make([]DistributionEntryResponse, len(d.Entries))
	for i, e := range d.Entries {
		entries[i] = DistributionEntryResponse{
			Key:        e.Key,
			Total:      e.Total,
			Count:      e.Count,
			Percentage: e.Percentage,
		}
	}
	return DistributionResponse{
		CurrencyCode:       d.CurrencyCode,
		GrandTotal:         d.GrandTotal,
		Entries:            entries,
		SkippedConversions: d.SkippedConversions,
		Degraded:           d.SkippedConversions > 0,
	}
}

// MonthBucketResponse is one month of a series.
type MonthBucketResponse struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// MonthlySeriesResponse represents a monthly series report.
type MonthlySeriesResponse struct {
	CurrencyCode       string                `json:"currencyCode"`
	Buckets            []MonthBucketResponse `json:"buckets"`
	SkippedConversions int                   `json:"skippedConversions"`
	Degraded           bool                  `json:"degraded"`
}

func toMonthBucketResponses(buckets []domain.MonthBucket) []MonthBucketResponse {
	res := make([]MonthBucketResponse, len(buckets))
	for i, b := range buckets {
		res[i] = MonthBucketResponse{Year: b.Year, Month: int(b.Month), Label: b.Label, Total: b.Total}
	}
	return res
}

// ToMonthlySeriesResponse converts a domain.MonthlySeries to MonthlySeriesResponse DTO.
func ToMonthlySeriesResponse(s *domain.MonthlySeries) MonthlySeriesResponse {
	return MonthlySeriesResponse{
		CurrencyCode:       s.CurrencyCode,
		Buckets:            toMonthBucketResponses(s.Buckets),
		SkippedConversions: s.SkippedConversions,
		Degraded:           s.SkippedConversions > 0,
	}
}

// PeriodComparisonResponse compares the trailing window with the one before it.
type PeriodComparisonResponse struct {
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
	Growth   decimal.Decimal `json:"growth"`
}

// DashboardResponse represents the dashboard summary.
type DashboardResponse struct {
	CurrencyCode       string                   `json:"currencyCode"`
	Incomes            PeriodComparisonResponse `json:"incomes"`
	Expenses           PeriodComparisonResponse `json:"expenses"`
	Balance            PeriodComparisonResponse `json:"balance"`
	TopExpenseCategory *string                  `json:"topExpenseCategory"`
	ExpenseSeries      []MonthBucketResponse    `json:"expenseSeries"`
	SkippedConversions int                      `json:"skippedConversions"`
	Degraded           bool                     `json:"degraded"`
}

func toPeriodComparisonResponse(p domain.PeriodComparison) PeriodComparisonResponse {
	return PeriodComparisonResponse{Current: p.Current, Previous: p.Previous, Growth: p.Growth}
}

// ToDashboardResponse converts a domain.DashboardSummary to DashboardResponse DTO.
func ToDashboardResponse(s *domain.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		CurrencyCode:       s.CurrencyCode,
		Incomes:            toPeriodComparisonResponse(s.Incomes),
		Expenses:           toPeriodComparisonResponse(s.Expenses),
		Balance:            toPeriodComparisonResponse(s.Balance),
		TopExpenseCategory: s.TopExpenseCategory,
		ExpenseSeries:      toMonthBucketResponses(s.ExpenseSeries),
		SkippedConversions: s.SkippedConversions,
		Degraded:           s.SkippedConversions > 0,
	}
}
