package utils

import (
	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of fractional digits money amounts are quantized to.
const AmountPlaces = 2

// RoundAmount quantizes a money amount to two places, rounding half away from zero
// (12.345 -> 12.35, -12.345 -> -12.35).
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(AmountPlaces)
}

// FormatWithPrecision formats an amount with the given precision
// Example: amount 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
