package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordKeyFunc extracts the grouping key of a record. Empty keys are not grouped.
type RecordKeyFunc func(domain.MonetaryRecord) string

// AggregationSvc computes totals, distributions and series in one target currency.
// Records whose rate cannot be resolved are counted with their unconverted amount
// and reported through the SkippedConversions counters; aggregations never fail.
type AggregationSvc interface {
	TotalInCurrency(ctx context.Context, records []domain.MonetaryRecord, target string) domain.ConvertedTotal
	DistributionByKey(ctx context.Context, records []domain.MonetaryRecord, keyFn RecordKeyFunc, target string) domain.Distribution
	MonthOverMonthGrowth(current, previous decimal.Decimal) decimal.Decimal
	TimeSeriesByMonth(ctx context.Context, records []domain.MonetaryRecord, target string, windowDays int, now time.Time) domain.MonthlySeries
	ConvertRecords(ctx context.Context, records []domain.MonetaryRecord, target string) []domain.ConvertedRecord
}
