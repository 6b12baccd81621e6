package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateReader reads the persisted rate snapshot history.
// Snapshots are never used for conversion; they are an audit trail of refreshes.
type ExchangeRateReader interface {
	// FindExchangeRate returns the most recent snapshot for a pair.
	FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates returns snapshots newest first. Empty codes match any currency.
	ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string, limit int) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate appends a snapshot.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// QuoteFetcher retrieves a live bid/ask quote for one foreign currency,
// priced in the base currency.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, currencyCode string) (domain.Quote, error)
}

// RateCache stores resolved conversion factors keyed by currency pair.
type RateCache interface {
	Get(ctx context.Context, key string) (decimal.Decimal, bool)
	Set(ctx context.Context, key string, rate decimal.Decimal)
	Clear(ctx context.Context)
	Len() int
}
