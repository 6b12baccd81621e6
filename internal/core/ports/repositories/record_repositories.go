package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// RecordReader defines read operations for incomes and expenses.
type RecordReader interface {
	// FindRecordByID retrieves a single record.
	FindRecordByID(ctx context.Context, recordID string) (*domain.MonetaryRecord, error)

	// ListRecords returns the user's records ordered by record date then creation time, newest first.
	ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.MonetaryRecord, error)
}

// RecordWriter defines write operations for incomes and expenses.
type RecordWriter interface {
	SaveRecord(ctx context.Context, record domain.MonetaryRecord) error
}

// RecordRepositoryFacade combines all record-related repository interfaces
type RecordRepositoryFacade interface {
	RecordReader
	RecordWriter
}
