package mapping

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

// ToModelRecord converts a domain MonetaryRecord to a model MonetaryRecord
func ToModelRecord(d domain.MonetaryRecord) models.MonetaryRecord {
	code := domain.NormalizeCode(d.CurrencyCode)
	return models.MonetaryRecord{
		RecordID:     d.RecordID,
		UserID:       d.UserID,
		Kind:         string(d.Kind),
		Amount:       d.Amount,
		CurrencyCode: ToNullString(&code),
		RecordDate:   d.RecordDate,
		Category:     d.Category,
		Source:       d.Source,
		Description:  d.Description,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRecord converts a model MonetaryRecord to a domain MonetaryRecord.
// A NULL currency becomes the empty code, which readers treat as base.
func ToDomainRecord(m models.MonetaryRecord) domain.MonetaryRecord {
	return domain.MonetaryRecord{
		RecordID:     m.RecordID,
		UserID:       m.UserID,
		Kind:         domain.RecordKind(m.Kind),
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode.String,
		RecordDate:   m.RecordDate,
		Category:     m.Category,
		Source:       m.Source,
		Description:  m.Description,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRecordSlice converts model records preserving order.
func ToDomainRecordSlice(ms []models.MonetaryRecord) []domain.MonetaryRecord {
	ds := make([]domain.MonetaryRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRecord(m)
	}
	return ds
}
