package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecordRequest defines the data needed to record an income or an expense.
type CreateRecordRequest struct {
	Kind         string          `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,currencycode"` // empty means base
	RecordDate   time.Time       `json:"recordDate" binding:"required"`
	Category     string          `json:"category" binding:"max=100"`
	Source       string          `json:"source" binding:"max=100"`
	Description  string          `json:"description" binding:"max=500"`
}

// ListRecordsParams defines query parameters for listing records.
type ListRecordsParams struct {
	Kind      string `form:"kind" binding:"omitempty,oneof=INCOME EXPENSE"`
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// RecordResponse is a record together with its amount in the display currency.
type RecordResponse struct {
	RecordID          string          `json:"recordID"`
	Kind              string          `json:"kind"`
	Amount            decimal.Decimal `json:"amount"`
	CurrencyCode      string          `json:"currencyCode"`
	ConvertedAmount   decimal.Decimal `json:"convertedAmount"`
	TargetCurrency    string          `json:"targetCurrency"`
	WasConverted      bool            `json:"wasConverted"`
	ConversionSkipped bool            `json:"conversionSkipped"`
	RecordDate        time.Time       `json:"recordDate"`
	Category          string          `json:"category,omitempty"`
	Source            string          `json:"source,omitempty"`
	Description       string          `json:"description,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ToRecordResponse converts a domain.ConvertedRecord to RecordResponse DTO.
func ToRecordResponse(rec *domain.ConvertedRecord) RecordResponse {
	return RecordResponse{
		RecordID:          rec.RecordID,
		Kind:              string(rec.Kind),
		Amount:            rec.Amount,
		CurrencyCode:      rec.OriginalCurrency,
		ConvertedAmount:   rec.ConvertedAmount,
		TargetCurrency:    rec.TargetCurrency,
		WasConverted:      rec.WasConverted,
		ConversionSkipped: rec.ConversionSkipped,
		RecordDate:        rec.RecordDate,
		Category:          rec.Category,
		Source:            rec.Source,
		Description:       rec.Description,
		CreatedAt:         rec.CreatedAt,
	}
}

// ToStoredRecordResponse converts a freshly stored record, which is expressed in its own currency.
func ToStoredRecordResponse(rec *domain.MonetaryRecord) RecordResponse {
	return ToRecordResponse(&domain.ConvertedRecord{
		MonetaryRecord:   *rec,
		OriginalCurrency: rec.CurrencyCode,
		ConvertedAmount:  rec.Amount,
		TargetCurrency:   rec.CurrencyCode,
	})
}

// ListRecordsResponse wraps a page of records.
type ListRecordsResponse struct {
	Records            []RecordResponse `json:"records"`
	CurrencyCode       string           `json:"currencyCode"`
	SkippedConversions int              `json:"skippedConversions"`
	NextToken          *string          `json:"nextToken,omitempty"`
}

// ToListRecordsResponse converts a domain.RecordPage to ListRecordsResponse DTO.
func ToListRecordsResponse(page *domain.RecordPage) ListRecordsResponse {
	records := make([]RecordResponse, len(page.Records))
	for i := range page.Records {
		records[i] = ToRecordResponse(&page.Records[i])
	}
	return ListRecordsResponse{
		Records:            records,
		CurrencyCode:       page.CurrencyCode,
		SkippedConversions: page.SkippedConversions,
		NextToken:          page.NextToken,
	}
}
