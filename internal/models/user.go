package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table.
type User struct {
	UserID                string         `db:"user_id"`
	Username              string         `db:"username"`
	PasswordHash          string         `db:"password_hash"`
	Name                  string         `db:"name"`
	PreferredCurrencyCode sql.NullString `db:"preferred_currency_code"` // NULL means the base currency
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
