package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind distinguishes incomes from expenses.
type RecordKind string

const (
	Income  RecordKind = "INCOME"
	Expense RecordKind = "EXPENSE"
)

// IsValid reports whether k is a known record kind.
func (k RecordKind) IsValid() bool {
	return k == Income || k == Expense
}

// MonetaryRecord is a single income or expense owned by a user.
// The conversion subsystem only ever reads it.
type MonetaryRecord struct {
	RecordID     string          `json:"recordID"`
	UserID       string          `json:"userID"`
	Kind         RecordKind      `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`       // 2 fractional digits
	CurrencyCode string          `json:"currencyCode"` // Empty means the base currency
	RecordDate   time.Time       `json:"recordDate"`
	Category     string          `json:"category"` // Expenses are grouped by category
	Source       string          `json:"source"`   // Incomes are grouped by source
	Description  string          `json:"description"`
	AuditFields
}

// EffectiveCurrency returns the record's currency, defaulting to base when unset.
func (r MonetaryRecord) EffectiveCurrency(base string) string {
	if code := NormalizeCode(r.CurrencyCode); code != "" {
		return code
	}
	return NormalizeCode(base)
}

// ConvertedRecord is a record re-expressed in a display currency. Never persisted.
type ConvertedRecord struct {
	MonetaryRecord
	OriginalCurrency  string          `json:"originalCurrency"`
	ConvertedAmount   decimal.Decimal `json:"convertedAmount"`
	TargetCurrency    string          `json:"targetCurrency"`
	WasConverted      bool            `json:"wasConverted"`
	ConversionSkipped bool            `json:"conversionSkipped"`
}

// RecordFilter narrows the records returned by the persistence layer.
type RecordFilter struct {
	UserID string
	Kind   *RecordKind
	From   *time.Time // inclusive
	To     *time.Time // exclusive
	Limit  int
	// Keyset cursor (record date, created at) taken from the previous page.
	AfterDate      *time.Time
	AfterCreatedAt *time.Time
}

// RecordPage is one page of converted records plus the cursor for the next page.
type RecordPage struct {
	Records            []ConvertedRecord
	CurrencyCode       string
	SkippedConversions int
	NextToken          *string
}
