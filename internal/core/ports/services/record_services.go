package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// RecordWriterSvc defines write operations for incomes and expenses.
type RecordWriterSvc interface {
	CreateRecord(ctx context.Context, userID string, req dto.CreateRecordRequest) (*domain.MonetaryRecord, error)
}

// RecordReaderSvc defines read operations for incomes and expenses.
type RecordReaderSvc interface {
	// ListConvertedRecords returns a page of records converted to the user's display currency.
	ListConvertedRecords(ctx context.Context, userID string, params dto.ListRecordsParams) (*domain.RecordPage, error)
}

// RecordSvcFacade combines all record-related service interfaces
type RecordSvcFacade interface {
	RecordReaderSvc
	RecordWriterSvc
}
