package domain

import "strings"

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "ARS")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "Peso Argentino"
	IsBase       bool   `json:"isBase"`       // Unit the quote source prices against
	AuditFields
}

// CurrencySet is the configured group of currencies the conversion subsystem understands:
// exactly one base plus any number of foreign currencies quoted against it.
type CurrencySet struct {
	Base    string
	Foreign []string
}

// NewCurrencySet normalises codes to upper case and drops duplicates and the base
// from the foreign list.
func NewCurrencySet(base string, foreign []string) CurrencySet {
	base = NormalizeCode(base)
	seen := map[string]bool{base: true}
	set := CurrencySet{Base: base}
	for _, code := range foreign {
		code = NormalizeCode(code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		set.Foreign = append(set.Foreign, code)
	}
	return set
}

// IsBase reports whether code is the base currency.
func (s CurrencySet) IsBase(code string) bool {
	return NormalizeCode(code) == s.Base
}

// IsForeign reports whether code is one of the foreign currencies.
func (s CurrencySet) IsForeign(code string) bool {
	code = NormalizeCode(code)
	for _, f := range s.Foreign {
		if f == code {
			return true
		}
	}
	return false
}

// Supports reports whether code is the base or a foreign currency.
func (s CurrencySet) Supports(code string) bool {
	return s.IsBase(code) || s.IsForeign(code)
}

// Codes returns the base followed by the foreign currencies.
func (s CurrencySet) Codes() []string {
	codes := make([]string, 0, len(s.Foreign)+1)
	codes = append(codes, s.Base)
	return append(codes, s.Foreign...)
}

// NormalizeCode trims and upper-cases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
