package domain

import "github.com/shopspring/decimal"

// PeriodComparison compares a trailing window with the window before it.
type PeriodComparison struct {
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
	Growth   decimal.Decimal `json:"growth"` // percentage, 1 decimal place
}

// DashboardSummary is everything the dashboard renders, in the user's currency.
type DashboardSummary struct {
	CurrencyCode       string           `json:"currencyCode"`
	Incomes            PeriodComparison `json:"incomes"`
	Expenses           PeriodComparison `json:"expenses"`
	Balance            PeriodComparison `json:"balance"`
	TopExpenseCategory *string          `json:"topExpenseCategory"`
	ExpenseSeries      []MonthBucket    `json:"expenseSeries"`
	SkippedConversions int              `json:"skippedConversions"`
}
