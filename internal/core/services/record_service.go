package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
	"github.com/google/uuid"
)

// DefaultRecordPageSize is used when the caller does not ask for a page size.
const DefaultRecordPageSize = 20

type recordService struct {
	BaseService
	recordRepo  portsrepo.RecordRepositoryFacade
	users       portssvc.UserSvcFacade
	aggregation portssvc.AggregationSvc
	currencies  domain.CurrencySet
	clock       utils.Clock
}

// RecordServiceOption is a functional option for configuring the record service
type RecordServiceOption func(*recordService)

// WithRecordClock sets the clock used for audit timestamps.
func WithRecordClock(clock utils.Clock) RecordServiceOption {
	return func(s *recordService) {
		s.clock = clock
	}
}

// NewRecordService creates a record service.
func NewRecordService(recordRepo portsrepo.RecordRepositoryFacade, users portssvc.UserSvcFacade, aggregation portssvc.AggregationSvc, currencies domain.CurrencySet, options ...RecordServiceOption) portssvc.RecordSvcFacade {
	svc := &recordService{
		recordRepo:  recordRepo,
		users:       users,
		aggregation: aggregation,
		currencies:  currencies,
		clock:       utils.SystemClock{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RecordSvcFacade = (*recordService)(nil)

func (s *recordService) CreateRecord(ctx context.Context, userID string, req dto.CreateRecordRequest) (*domain.MonetaryRecord, error) {
	kind := domain.RecordKind(strings.ToUpper(req.Kind))
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: kind must be INCOME or EXPENSE", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.Amount.Equal(utils.RoundAmount(req.Amount)) {
		return nil, fmt.Errorf("%w: amount must have at most %d decimal places", apperrors.ErrValidation, utils.AmountPlaces)
	}
	if req.RecordDate.IsZero() {
		return nil, fmt.Errorf("%w: recordDate is required", apperrors.ErrValidation)
	}

	code := domain.NormalizeCode(req.CurrencyCode)
	if code == "" {
		code = s.currencies.Base
	}
	if !s.currencies.Supports(code) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrencyCode, req.CurrencyCode)
	}

	now := s.clock.Now()
	record := domain.MonetaryRecord{
		RecordID:     uuid.NewString(),
		UserID:       userID,
		Kind:         kind,
		Amount:       req.Amount,
		CurrencyCode: code,
		RecordDate:   req.RecordDate,
		Category:     strings.TrimSpace(req.Category),
		Source:       strings.TrimSpace(req.Source),
		Description:  strings.TrimSpace(req.Description),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.recordRepo.SaveRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save record", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create record in service: %w", err)
	}

	s.LogInfo(ctx, "Record created",
		slog.String("record_id", record.RecordID),
		slog.String("kind", string(kind)),
		slog.String("currency_code", code))
	return &record, nil
}

// ListConvertedRecords pages through the user's records newest first and
// converts each one to the user's display currency.
func (s *recordService) ListConvertedRecords(ctx context.Context, userID string, params dto.ListRecordsParams) (*domain.RecordPage, error) {
	target, err := s.users.DisplayCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultRecordPageSize
	}
	filter := domain.RecordFilter{UserID: userID, Limit: limit + 1}
	if params.Kind != "" {
		kind := domain.RecordKind(strings.ToUpper(params.Kind))
		if !kind.IsValid() {
			return nil, fmt.Errorf("%w: kind must be INCOME or EXPENSE", apperrors.ErrValidation)
		}
		filter.Kind = &kind
	}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		filter.AfterDate = &cursor.RecordDate
		filter.AfterCreatedAt = &cursor.CreatedAt
	}

	records, err := s.recordRepo.ListRecords(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list records in service: %w", err)
	}

	page := &domain.RecordPage{CurrencyCode: target}
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		token := pagination.EncodeToken(pagination.Cursor{RecordDate: last.RecordDate, CreatedAt: last.CreatedAt})
		page.NextToken = &token
	}

	page.Records = s.aggregation.ConvertRecords(ctx, records, target)
	for _, r := range page.Records {
		if r.ConversionSkipped {
			page.SkippedConversions++
		}
	}
	return page, nil
}
