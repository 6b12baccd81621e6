package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/metrics"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultHistoryLimit caps ListRateHistory when the caller passes no limit.
const DefaultHistoryLimit = 50

// SystemActor is recorded as the creator of snapshots taken outside a user request.
const SystemActor = "system"

var one = decimal.NewFromInt(1)

// exchangeRateService resolves conversion factors between supported currencies.
// Every foreign currency is quoted against the base, so foreign to foreign
// factors are derived through the base.
type exchangeRateService struct {
	BaseService
	currencies domain.CurrencySet
	fetcher    portsrepo.QuoteFetcher
	cache      portsrepo.RateCache
	rateRepo   portsrepo.ExchangeRateRepositoryFacade
	metrics    *metrics.Metrics
	clock      utils.Clock
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithRateRepository enables snapshot persistence and history.
func WithRateRepository(repo portsrepo.ExchangeRateRepositoryFacade) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.rateRepo = repo
	}
}

// WithRateMetrics records cache hits and refresh outcomes.
func WithRateMetrics(m *metrics.Metrics) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.metrics = m
	}
}

// WithRateClock sets the clock used to stamp snapshots.
func WithRateClock(clock utils.Clock) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.clock = clock
	}
}

// NewExchangeRateService creates the resolver. The cache is shared with whoever
// else needs to invalidate it and must not be nil.
func NewExchangeRateService(currencies domain.CurrencySet, fetcher portsrepo.QuoteFetcher, cache portsrepo.RateCache, options ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		currencies: currencies,
		fetcher:    fetcher,
		cache:      cache,
		clock:      utils.SystemClock{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) validatePair(fromCode, toCode string) (string, string, error) {
	from, to := domain.NormalizeCode(fromCode), domain.NormalizeCode(toCode)
	if !s.currencies.Supports(from) {
		return "", "", fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrencyCode, fromCode)
	}
	if !s.currencies.Supports(to) {
		return "", "", fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrencyCode, toCode)
	}
	return from, to, nil
}

// GetRate returns the factor such that amount_in_to = amount_in_from * rate.
func (s *exchangeRateService) GetRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	from, to, err := s.validatePair(fromCode, toCode)
	if err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return one, nil
	}

	key := domain.RateCacheKey(from, to)
	if rate, ok := s.cache.Get(ctx, key); ok {
		s.metrics.ObserveCacheLookup(true)
		return rate, nil
	}
	s.metrics.ObserveCacheLookup(false)

	rate, err := s.derive(ctx, from, to)
	if err != nil {
		s.LogWarn(ctx, "Exchange rate unavailable",
			slog.String("from", from),
			slog.String("to", to),
			slog.String("error", err.Error()))
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("%w: %s to %s: %v", apperrors.ErrRateUnavailable, from, to, err)
	}

	s.cache.Set(ctx, key, rate)
	s.LogDebug(ctx, "Exchange rate resolved",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("rate", rate.String()))
	return rate, nil
}

// derive computes a factor from live quotes. Intermediate hops are not cached.
func (s *exchangeRateService) derive(ctx context.Context, from, to string) (decimal.Decimal, error) {
	switch {
	case s.currencies.IsBase(from):
		mid, err := s.midpoint(ctx, to)
		if err != nil {
			return decimal.Zero, err
		}
		return one.Div(mid), nil
	case s.currencies.IsBase(to):
		return s.midpoint(ctx, from)
	default:
		toBase, err := s.derive(ctx, from, s.currencies.Base)
		if err != nil {
			return decimal.Zero, err
		}
		fromBase, err := s.derive(ctx, s.currencies.Base, to)
		if err != nil {
			return decimal.Zero, err
		}
		return toBase.Mul(fromBase), nil
	}
}

func (s *exchangeRateService) midpoint(ctx context.Context, foreign string) (decimal.Decimal, error) {
	quote, err := s.fetcher.FetchQuote(ctx, foreign)
	if err != nil {
		return decimal.Zero, err
	}
	mid := quote.Midpoint()
	if !mid.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive midpoint for %s", apperrors.ErrRateUnavailable, foreign)
	}
	return mid, nil
}

// GetAllRates resolves base to foreign for every foreign currency. Currencies
// whose rate is unavailable are left out of the result.
func (s *exchangeRateService) GetAllRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	now := s.clock.Now()
	rates := make([]domain.ExchangeRate, 0, len(s.currencies.Foreign))
	for _, foreign := range s.currencies.Foreign {
		rate, err := s.GetRate(ctx, s.currencies.Base, foreign)
		if err != nil {
			continue
		}
		rates = append(rates, domain.ExchangeRate{
			FromCurrencyCode: s.currencies.Base,
			ToCurrencyCode:   foreign,
			Rate:             rate,
			DateEffective:    now,
		})
	}
	return rates, nil
}

// ClearCache drops every cached rate.
func (s *exchangeRateService) ClearCache(ctx context.Context) {
	s.cache.Clear(ctx)
	s.LogInfo(ctx, "Exchange rate cache cleared")
}

// RefreshRates clears the cache and resolves both directions of every
// base/foreign pair concurrently, then persists one snapshot per direction.
// Pairs resolved before a failure stay cached.
func (s *exchangeRateService) RefreshRates(ctx context.Context, actorUserID string) ([]domain.ExchangeRate, error) {
	s.ClearCache(ctx)
	if actorUserID == "" {
		actorUserID = SystemActor
	}

	base := s.currencies.Base
	resolved := make([][2]decimal.Decimal, len(s.currencies.Foreign))
	g, gctx := errgroup.WithContext(ctx)
	for i, foreign := range s.currencies.Foreign {
		g.Go(func() error {
			toForeign, err := s.GetRate(gctx, base, foreign)
			if err != nil {
				return err
			}
			toBase, err := s.GetRate(gctx, foreign, base)
			if err != nil {
				return err
			}
			resolved[i] = [2]decimal.Decimal{toForeign, toBase}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.ObserveRefresh(metrics.OutcomeFailure)
		s.LogError(ctx, err, "Exchange rate refresh failed")
		return nil, fmt.Errorf("failed to refresh exchange rates: %w", err)
	}

	now := s.clock.Now()
	rates := make([]domain.ExchangeRate, 0, 2*len(s.currencies.Foreign))
	for i, foreign := range s.currencies.Foreign {
		rates = append(rates,
			newSnapshot(base, foreign, resolved[i][0], now, actorUserID),
			newSnapshot(foreign, base, resolved[i][1], now, actorUserID),
		)
	}

	if s.rateRepo != nil {
		for _, rate := range rates {
			if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
				s.metrics.ObserveRefresh(metrics.OutcomeFailure)
				s.LogError(ctx, err, "Failed to persist exchange rate snapshot",
					slog.String("from", rate.FromCurrencyCode),
					slog.String("to", rate.ToCurrencyCode))
				return nil, fmt.Errorf("failed to persist exchange rate snapshot: %w", err)
			}
		}
	}

	s.metrics.ObserveRefresh(metrics.OutcomeSuccess)
	s.LogInfo(ctx, "Exchange rates refreshed", slog.Int("pairs", len(rates)))
	return rates, nil
}

func newSnapshot(from, to string, rate decimal.Decimal, at time.Time, actor string) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             rate,
		DateEffective:    at,
		AuditFields: domain.AuditFields{
			CreatedAt:     at,
			CreatedBy:     actor,
			LastUpdatedAt: at,
			LastUpdatedBy: actor,
		},
	}
}

// ListRateHistory returns persisted snapshots newest first. Empty codes match any currency.
func (s *exchangeRateService) ListRateHistory(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRate, error) {
	if s.rateRepo == nil {
		return nil, errors.New("exchange rate history is not configured")
	}
	from, to := domain.NormalizeCode(fromCode), domain.NormalizeCode(toCode)
	for _, code := range []string{from, to} {
		if code != "" && !s.currencies.Supports(code) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrencyCode, code)
		}
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rates, err := s.rateRepo.ListExchangeRates(ctx, from, to, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rate history")
		return nil, fmt.Errorf("failed to list exchange rate history: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}
