package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/utils"
)

// Dashboard windows, in days.
const (
	DashboardPeriodDays = 30
	DashboardSeriesDays = 180
)

// Report groupings.
const (
	GroupByCategory = "category"
	GroupBySource   = "source"
)

// reportingService builds the dashboard and report views in the user's display currency.
type reportingService struct {
	BaseService
	recordRepo  portsrepo.RecordReader
	users       portssvc.UserSvcFacade
	aggregation portssvc.AggregationSvc
	clock       utils.Clock
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock sets the clock that anchors every window.
func WithReportingClock(clock utils.Clock) ReportingServiceOption {
	return func(s *reportingService) {
		s.clock = clock
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(recordRepo portsrepo.RecordReader, users portssvc.UserSvcFacade, aggregation portssvc.AggregationSvc, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		recordRepo:  recordRepo,
		users:       users,
		aggregation: aggregation,
		clock:       utils.SystemClock{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) listSince(ctx context.Context, userID string, kind domain.RecordKind, from time.Time) ([]domain.MonetaryRecord, error) {
	records, err := s.recordRepo.ListRecords(ctx, domain.RecordFilter{UserID: userID, Kind: &kind, From: &from})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve records",
			slog.String("user_id", userID),
			slog.String("kind", string(kind)),
			slog.String("from", from.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve %s records: %w", kind, err)
	}
	return records, nil
}

// splitWindows separates records into [from30, now] and [from60, from30).
func splitWindows(records []domain.MonetaryRecord, from60, from30 time.Time) (current, previous []domain.MonetaryRecord) {
	for _, r := range records {
		switch {
		case !r.RecordDate.Before(from30):
			current = append(current, r)
		case !r.RecordDate.Before(from60):
			previous = append(previous, r)
		}
	}
	return current, previous
}

func (s *reportingService) compare(current, previous domain.ConvertedTotal) domain.PeriodComparison {
	return domain.PeriodComparison{
		Current:  current.Amount,
		Previous: previous.Amount,
		Growth:   s.aggregation.MonthOverMonthGrowth(current.Amount, previous.Amount),
	}
}

// Dashboard compares the last 30 days with the 30 days before them and adds
// the top expense category and a 180 day expense series.
func (s *reportingService) Dashboard(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	target, err := s.users.DisplayCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	from30 := now.AddDate(0, 0, -DashboardPeriodDays)
	from60 := now.AddDate(0, 0, -2*DashboardPeriodDays)
	from180 := now.AddDate(0, 0, -DashboardSeriesDays)

	incomes, err := s.listSince(ctx, userID, domain.Income, from60)
	if err != nil {
		return nil, err
	}
	expenses, err := s.listSince(ctx, userID, domain.Expense, from180)
	if err != nil {
		return nil, err
	}

	incCur, incPrev := splitWindows(incomes, from60, from30)
	expCur, expPrev := splitWindows(expenses, from60, from30)

	// All passes below share failed pairs so a dead quote source is asked once per currency.
	ctx = WithConversionMemo(ctx)
	incomesNow := s.aggregation.TotalInCurrency(ctx, incCur, target)
	incomesBefore := s.aggregation.TotalInCurrency(ctx, incPrev, target)
	expensesNow := s.aggregation.TotalInCurrency(ctx, expCur, target)
	expensesBefore := s.aggregation.TotalInCurrency(ctx, expPrev, target)

	balanceNow := incomesNow.Amount.Sub(expensesNow.Amount)
	balanceBefore := incomesBefore.Amount.Sub(expensesBefore.Amount)

	summary := &domain.DashboardSummary{
		CurrencyCode: target,
		Incomes:      s.compare(incomesNow, incomesBefore),
		Expenses:     s.compare(expensesNow, expensesBefore),
		Balance: domain.PeriodComparison{
			Current:  balanceNow,
			Previous: balanceBefore,
			Growth:   s.aggregation.MonthOverMonthGrowth(balanceNow, balanceBefore),
		},
	}

	byCategory := s.aggregation.DistributionByKey(ctx, expCur, ByCategory, target)
	if len(byCategory.Entries) > 0 {
		top := byCategory.Entries[0].Key
		summary.TopExpenseCategory = &top
	}

	series := s.aggregation.TimeSeriesByMonth(ctx, expenses, target, DashboardSeriesDays, now)
	summary.ExpenseSeries = series.Buckets

	// Every record in scope is either in the series window or the income window,
	// so this counts each unconvertible record once.
	summary.SkippedConversions = series.SkippedConversions +
		incomesNow.SkippedConversions + incomesBefore.SkippedConversions

	s.LogDebug(ctx, "Dashboard generated",
		slog.String("user_id", userID),
		slog.String("currency_code", target),
		slog.Int("skipped_conversions", summary.SkippedConversions))
	return summary, nil
}

// Distribution groups records of one kind from the trailing window. Expenses
// default to grouping by category and incomes by source.
func (s *reportingService) Distribution(ctx context.Context, userID string, kind domain.RecordKind, groupBy string, windowDays int) (*domain.Distribution, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: kind must be INCOME or EXPENSE", apperrors.ErrValidation)
	}
	if windowDays <= 0 {
		windowDays = DashboardPeriodDays
	}
	if groupBy == "" {
		groupBy = GroupByCategory
		if kind == domain.Income {
			groupBy = GroupBySource
		}
	}

	var keyFn portssvc.RecordKeyFunc
	switch groupBy {
	case GroupByCategory:
		keyFn = ByCategory
	case GroupBySource:
		keyFn = BySource
	default:
		return nil, fmt.Errorf("%w: groupBy must be %s or %s", apperrors.ErrValidation, GroupByCategory, GroupBySource)
	}

	target, err := s.users.DisplayCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.listSince(ctx, userID, kind, s.clock.Now().AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, err
	}

	dist := s.aggregation.DistributionByKey(ctx, records, keyFn, target)
	return &dist, nil
}

// MonthlySeries buckets records of one kind from the trailing window by calendar month.
func (s *reportingService) MonthlySeries(ctx context.Context, userID string, kind domain.RecordKind, windowDays int) (*domain.MonthlySeries, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: kind must be INCOME or EXPENSE", apperrors.ErrValidation)
	}
	if windowDays <= 0 {
		windowDays = DashboardSeriesDays
	}

	target, err := s.users.DisplayCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	records, err := s.listSince(ctx, userID, kind, now.AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, err
	}

	series := s.aggregation.TimeSeriesByMonth(ctx, records, target, windowDays, now)
	return &series, nil
}
