package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// MonetaryRecord is a row of the records table.
type MonetaryRecord struct {
	RecordID     string          `db:"record_id"`
	UserID       string          `db:"user_id"`
	Kind         string          `db:"kind"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode sql.NullString  `db:"currency_code"`
	RecordDate   time.Time       `db:"record_date"`
	Category     string          `db:"category"`
	Source       string          `db:"source"`
	Description  string          `db:"description"`
	AuditFields
}
