package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencySvcFacade exposes the configured currency set and its catalogue entries.
type CurrencySvcFacade interface {
	// GetCurrencyByCode retrieves a supported currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves the supported currencies, base first.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// SupportedCurrencies returns the configured base and foreign codes.
	SupportedCurrencies() domain.CurrencySet
	// SyncCatalogue adds catalogue rows for configured codes that have none and reports how many were added.
	SyncCatalogue(ctx context.Context) (int, error)
}

// ExchangeRateResolverSvc answers "how many units of to per unit of from".
type ExchangeRateResolverSvc interface {
	// GetRate returns the conversion factor between two supported currencies.
	GetRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)

	// GetAllRates returns base to foreign rates for every foreign currency.
	GetAllRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateAdminSvc covers cache invalidation and snapshot history.
type ExchangeRateAdminSvc interface {
	// ClearCache drops every cached rate.
	ClearCache(ctx context.Context)

	// RefreshRates clears the cache, re-resolves every base/foreign pair and persists snapshots.
	RefreshRates(ctx context.Context, actorUserID string) ([]domain.ExchangeRate, error)

	// ListRateHistory returns persisted snapshots, newest first.
	ListRateHistory(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateResolverSvc
	ExchangeRateAdminSvc
}

// ConverterSvc re-expresses an amount in another currency.
type ConverterSvc interface {
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error)
}
