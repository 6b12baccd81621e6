package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/metrics"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// Percentages are rounded to 2 places, growth to 1.
const (
	percentagePlaces = 2
	growthPlaces     = 1
)

var hundred = decimal.NewFromInt(100)

// aggregationService converts records one by one and accumulates the results.
// A record whose conversion fails contributes its unconverted amount and is
// counted as skipped; no aggregation ever returns an error. A pair that fails
// once is not retried for the rest of the aggregation.
type aggregationService struct {
	BaseService
	converter    portssvc.ConverterSvc
	baseCurrency string
	metrics      *metrics.Metrics
}

// AggregationServiceOption is a functional option for configuring the aggregation service
type AggregationServiceOption func(*aggregationService)

// WithAggregationMetrics counts conversion fallbacks.
func WithAggregationMetrics(m *metrics.Metrics) AggregationServiceOption {
	return func(s *aggregationService) {
		s.metrics = m
	}
}

// NewAggregationService creates an aggregation engine. baseCurrency is assumed
// for records that carry no currency.
func NewAggregationService(converter portssvc.ConverterSvc, baseCurrency string, options ...AggregationServiceOption) portssvc.AggregationSvc {
	svc := &aggregationService{
		converter:    converter,
		baseCurrency: domain.NormalizeCode(baseCurrency),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AggregationSvc = (*aggregationService)(nil)

func (s *aggregationService) target(code string) string {
	if code = domain.NormalizeCode(code); code != "" {
		return code
	}
	return s.baseCurrency
}

type conversionPair struct {
	from, to string
}

// conversionMemo remembers pairs that failed to convert so that each one
// reaches the resolver at most once while the memo lives.
type conversionMemo struct {
	mu     sync.Mutex
	failed map[conversionPair]error
}

func newConversionMemo() *conversionMemo {
	return &conversionMemo{failed: make(map[conversionPair]error)}
}

func (m *conversionMemo) failure(pair conversionPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failed[pair]
}

func (m *conversionMemo) remember(pair conversionPair, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed[pair] = err
}

type conversionMemoKey struct{}

// WithConversionMemo returns a context under which every aggregation shares
// one set of failed pairs. Without it each aggregation call keeps its own.
func WithConversionMemo(ctx context.Context) context.Context {
	if _, ok := ctx.Value(conversionMemoKey{}).(*conversionMemo); ok {
		return ctx
	}
	return context.WithValue(ctx, conversionMemoKey{}, newConversionMemo())
}

func memoFrom(ctx context.Context) *conversionMemo {
	if memo, ok := ctx.Value(conversionMemoKey{}).(*conversionMemo); ok {
		return memo
	}
	return newConversionMemo()
}

func (s *aggregationService) convert(ctx context.Context, memo *conversionMemo, rec domain.MonetaryRecord, target string) domain.ConvertedRecord {
	from := rec.EffectiveCurrency(s.baseCurrency)
	converted := domain.ConvertedRecord{
		MonetaryRecord:   rec,
		OriginalCurrency: from,
		TargetCurrency:   target,
	}
	pair := conversionPair{from: from, to: target}

	// Zero amounts convert without a rate, so a failed pair does not apply to them.
	var err error
	if !rec.Amount.IsZero() {
		err = memo.failure(pair)
	}
	var amount decimal.Decimal
	if err == nil {
		amount, err = s.converter.Convert(ctx, rec.Amount, from, target)
		if err != nil {
			memo.remember(pair, err)
		}
	}
	if err != nil {
		err = fmt.Errorf("%w: record %s: %w", apperrors.ErrConversionSkipped, rec.RecordID, err)
		s.LogWarn(ctx, "Conversion skipped, using unconverted amount",
			slog.String("record_id", rec.RecordID),
			slog.String("from", from),
			slog.String("to", target),
			slog.String("error", err.Error()))
		s.metrics.ObserveConversionFallback(from, target)
		converted.ConvertedAmount = rec.Amount
		converted.ConversionSkipped = true
		return converted
	}

	converted.ConvertedAmount = amount
	converted.WasConverted = from != target
	return converted
}

// ConvertRecords re-expresses every record in target, preserving order.
func (s *aggregationService) ConvertRecords(ctx context.Context, records []domain.MonetaryRecord, target string) []domain.ConvertedRecord {
	target = s.target(target)
	memo := memoFrom(ctx)
	out := make([]domain.ConvertedRecord, len(records))
	for i, rec := range records {
		out[i] = s.convert(ctx, memo, rec, target)
	}
	return out
}

// TotalInCurrency sums the converted amounts.
func (s *aggregationService) TotalInCurrency(ctx context.Context, records []domain.MonetaryRecord, target string) domain.ConvertedTotal {
	target = s.target(target)
	total := domain.ConvertedTotal{Amount: decimal.Zero, CurrencyCode: target}
	memo := memoFrom(ctx)
	for _, rec := range records {
		c := s.convert(ctx, memo, rec, target)
		if c.ConversionSkipped {
			total.SkippedConversions++
		}
		total.Amount = total.Amount.Add(c.ConvertedAmount)
	}
	total.Amount = utils.RoundAmount(total.Amount)
	return total
}

// DistributionByKey groups records by keyFn in first-seen order, then sorts
// groups by percentage of the grand total, highest first. Ties keep first-seen order.
func (s *aggregationService) DistributionByKey(ctx context.Context, records []domain.MonetaryRecord, keyFn portssvc.RecordKeyFunc, target string) domain.Distribution {
	target = s.target(target)
	dist := domain.Distribution{GrandTotal: decimal.Zero, CurrencyCode: target}
	memo := memoFrom(ctx)

	index := make(map[string]int)
	for _, rec := range records {
		key := keyFn(rec)
		if key == "" {
			continue
		}
		c := s.convert(ctx, memo, rec, target)
		if c.ConversionSkipped {
			dist.SkippedConversions++
		}
		i, seen := index[key]
		if !seen {
			i = len(dist.Entries)
			index[key] = i
			dist.Entries = append(dist.Entries, domain.DistributionEntry{Key: key, Total: decimal.Zero})
		}
		dist.Entries[i].Total = dist.Entries[i].Total.Add(c.ConvertedAmount)
		dist.Entries[i].Count++
		dist.GrandTotal = dist.GrandTotal.Add(c.ConvertedAmount)
	}

	for i := range dist.Entries {
		dist.Entries[i].Percentage = percentageOf(dist.Entries[i].Total, dist.GrandTotal)
	}
	sort.SliceStable(dist.Entries, func(a, b int) bool {
		return dist.Entries[a].Percentage.GreaterThan(dist.Entries[b].Percentage)
	})
	if dist.Entries == nil {
		dist.Entries = []domain.DistributionEntry{}
	}
	return dist
}

func percentageOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(percentagePlaces)
}

// MonthOverMonthGrowth is (current-previous)/previous*100 rounded to 1 place.
// A zero previous yields 0 when current is also zero and 100 otherwise.
func (s *aggregationService) MonthOverMonthGrowth(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(growthPlaces)
}

// TimeSeriesByMonth buckets records dated on or after now-windowDays by
// calendar month, oldest first. Months without records are omitted.
func (s *aggregationService) TimeSeriesByMonth(ctx context.Context, records []domain.MonetaryRecord, target string, windowDays int, now time.Time) domain.MonthlySeries {
	target = s.target(target)
	series := domain.MonthlySeries{Buckets: []domain.MonthBucket{}, CurrencyCode: target}
	cutoff := now.AddDate(0, 0, -windowDays)
	memo := memoFrom(ctx)

	type monthKey struct {
		year  int
		month time.Month
	}
	index := make(map[monthKey]int)
	for _, rec := range records {
		if rec.RecordDate.Before(cutoff) {
			continue
		}
		c := s.convert(ctx, memo, rec, target)
		if c.ConversionSkipped {
			series.SkippedConversions++
		}
		k := monthKey{rec.RecordDate.Year(), rec.RecordDate.Month()}
		i, seen := index[k]
		if !seen {
			i = len(series.Buckets)
			index[k] = i
			series.Buckets = append(series.Buckets, domain.MonthBucket{
				Year:  k.year,
				Month: k.month,
				Label: k.month.String()[:3],
				Total: decimal.Zero,
			})
		}
		series.Buckets[i].Total = series.Buckets[i].Total.Add(c.ConvertedAmount)
	}

	sort.Slice(series.Buckets, func(a, b int) bool {
		ba, bb := series.Buckets[a], series.Buckets[b]
		if ba.Year != bb.Year {
			return ba.Year < bb.Year
		}
		return ba.Month < bb.Month
	})
	return series
}

// ByCategory groups records by category.
func ByCategory(rec domain.MonetaryRecord) string { return rec.Category }

// BySource groups records by source.
func BySource(rec domain.MonetaryRecord) string { return rec.Source }
