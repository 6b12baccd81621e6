package mapping

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                d.UserID,
		Name:                  d.Name,
		Username:              d.Username,
		PasswordHash:          d.PasswordHash,
		PreferredCurrencyCode: ToNullString(d.PreferredCurrencyCode),
		AuditFields:           ToModelAuditFields(d.AuditFields),
		DeletedAt:             d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                m.UserID,
		Name:                  m.Name,
		Username:              m.Username,
		PasswordHash:          m.PasswordHash,
		PreferredCurrencyCode: FromNullString(m.PreferredCurrencyCode),
		AuditFields:           ToDomainAuditFields(m.AuditFields),
		DeletedAt:             m.DeletedAt,
	}
}
