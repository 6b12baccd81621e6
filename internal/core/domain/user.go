package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID                string  `json:"userID"` // Primary Key (e.g., UUID)
	Username              string  `json:"username"`
	Name                  string  `json:"name"`
	PasswordHash          string  `json:"-"`
	PreferredCurrencyCode *string `json:"preferredCurrencyCode"` // nil means the base currency
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// DisplayCurrency returns the user's preferred currency or base when none is set.
func (u User) DisplayCurrency(base string) string {
	if u.PreferredCurrencyCode != nil && *u.PreferredCurrencyCode != "" {
		return NormalizeCode(*u.PreferredCurrencyCode)
	}
	return NormalizeCode(base)
}
