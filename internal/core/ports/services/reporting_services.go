package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// ReportingService defines operations for generating the user's reports
type ReportingService interface {
	// Dashboard compares the last 30 days with the 30 days before them.
	Dashboard(ctx context.Context, userID string) (*domain.DashboardSummary, error)

	// Distribution groups the user's records of one kind over the trailing window.
	Distribution(ctx context.Context, userID string, kind domain.RecordKind, groupBy string, windowDays int) (*domain.Distribution, error)

	// MonthlySeries buckets the user's records of one kind by calendar month.
	MonthlySeries(ctx context.Context, userID string, kind domain.RecordKind, windowDays int) (*domain.MonthlySeries, error)
}
