package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the factor such that amount_in_to = amount_in_from * Rate.
// Each direction is derived independently, so Rate(X,Y) is not assumed to be
// exactly 1/Rate(Y,X).
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

// Quote is a bid/ask pair for one unit of a foreign currency, expressed in the base currency.
type Quote struct {
	CurrencyCode string
	Bid          decimal.Decimal
	Ask          decimal.Decimal
	FetchedAt    time.Time
}

var two = decimal.NewFromInt(2)

// Midpoint collapses the spread into a single price: (bid + ask) / 2.
func (q Quote) Midpoint() decimal.Decimal {
	return q.Bid.Add(q.Ask).Div(two)
}

// RateCacheKey names the cached factor converting from into to.
func RateCacheKey(from, to string) string {
	return fmt.Sprintf("exchange_rate_%s_to_%s", from, to)
}
