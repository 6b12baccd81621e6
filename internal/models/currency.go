package models

// Currency is a row of the currencies catalogue.
type Currency struct {
	CurrencyCode string `db:"currency_code"` // Primary Key (e.g., "ARS")
	Symbol       string `db:"symbol"`
	Name         string `db:"name"`
	AuditFields
}
