package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecordMapping_NullCurrency(t *testing.T) {
	m := ToModelRecord(domain.MonetaryRecord{RecordID: "r1", Kind: domain.Expense, Amount: decimal.RequireFromString("10.50")})
	assert.False(t, m.CurrencyCode.Valid)

	d := ToDomainRecord(m)
	assert.Equal(t, "", d.CurrencyCode)
	assert.Equal(t, "ARS", d.EffectiveCurrency("ARS"))
	assert.Equal(t, domain.Expense, d.Kind)
}

func TestRecordMapping_NormalizesCurrency(t *testing.T) {
	m := ToModelRecord(domain.MonetaryRecord{CurrencyCode: " usd", RecordDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)})
	assert.True(t, m.CurrencyCode.Valid)
	assert.Equal(t, "USD", m.CurrencyCode.String)
}

func TestUserMapping_PreferredCurrency(t *testing.T) {
	usd := "USD"
	m := ToModelUser(domain.User{UserID: "u1", PreferredCurrencyCode: &usd})
	assert.Equal(t, "USD", m.PreferredCurrencyCode.String)

	none := ToDomainUser(ToModelUser(domain.User{UserID: "u2"}))
	assert.Nil(t, none.PreferredCurrencyCode)
	assert.Equal(t, "ARS", none.DisplayCurrency("ARS"))
}
