package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConvertedTotal is a sum of records expressed in one currency.
// SkippedConversions counts records that were added unconverted because no rate was available.
type ConvertedTotal struct {
	Amount             decimal.Decimal `json:"amount"`
	CurrencyCode       string          `json:"currencyCode"`
	SkippedConversions int             `json:"skippedConversions"`
}

// Degraded reports whether any record fell back to its unconverted amount.
func (t ConvertedTotal) Degraded() bool {
	return t.SkippedConversions > 0
}

// DistributionEntry is one group of a distribution report.
type DistributionEntry struct {
	Key        string          `json:"key"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Distribution is a grouped breakdown in one currency.
type Distribution struct {
	Entries            []DistributionEntry `json:"entries"`
	GrandTotal         decimal.Decimal     `json:"grandTotal"`
	CurrencyCode       string              `json:"currencyCode"`
	SkippedConversions int                 `json:"skippedConversions"`
}

// MonthBucket is the converted total for one calendar month.
type MonthBucket struct {
	Year  int             `json:"year"`
	Month time.Month      `json:"month"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// MonthlySeries is an ordered set of month buckets.
type MonthlySeries struct {
	Buckets            []MonthBucket `json:"buckets"`
	CurrencyCode       string        `json:"currencyCode"`
	SkippedConversions int           `json:"skippedConversions"`
}
