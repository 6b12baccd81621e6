package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/adapters/cache"
	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RecordServiceTestSuite struct {
	suite.Suite
	ctx            context.Context
	now            time.Time
	fetcher        *MockQuoteFetcher
	mockRecordRepo *MockRecordRepository
	mockUserRepo   *MockUserRepository
	service        portssvc.RecordSvcFacade
}

func (suite *RecordServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	clock := newFakeClock(suite.now)
	suite.fetcher = new(MockQuoteFetcher)
	suite.mockRecordRepo = new(MockRecordRepository)
	suite.mockUserRepo = new(MockUserRepository)

	resolver := services.NewExchangeRateService(testCurrencies, suite.fetcher, cache.NewMemoryRateCache(time.Hour, clock, nil))
	aggregation := services.NewAggregationService(services.NewConverterService(resolver, testCurrencies), testCurrencies.Base)
	users := services.NewUserService(suite.mockUserRepo, testCurrencies)
	suite.service = services.NewRecordService(suite.mockRecordRepo, users, aggregation, testCurrencies, services.WithRecordClock(clock))
}

func TestRecordServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecordServiceTestSuite))
}

func (suite *RecordServiceTestSuite) validRequest() dto.CreateRecordRequest {
	return dto.CreateRecordRequest{
		Kind:       "EXPENSE",
		Amount:     dec("12.50"),
		RecordDate: suite.now.AddDate(0, 0, -1),
		Category:   " food ",
	}
}

func (suite *RecordServiceTestSuite) TestCreateRecord_DefaultsToBase() {
	suite.mockRecordRepo.On("SaveRecord", suite.ctx, mock.MatchedBy(func(r domain.MonetaryRecord) bool {
		return r.CurrencyCode == "ARS" && r.Category == "food" && r.UserID == "u1" &&
			r.CreatedAt.Equal(suite.now) && r.RecordID != ""
	})).Return(nil)

	rec, err := suite.service.CreateRecord(suite.ctx, "u1", suite.validRequest())

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, rec.Kind)
	suite.mockRecordRepo.AssertExpectations(suite.T())
}

func (suite *RecordServiceTestSuite) TestCreateRecord_ForeignCurrency() {
	suite.mockRecordRepo.On("SaveRecord", suite.ctx, mock.Anything).Return(nil)
	req := suite.validRequest()
	req.CurrencyCode = "usd"

	rec, err := suite.service.CreateRecord(suite.ctx, "u1", req)

	suite.Require().NoError(err)
	suite.Equal("USD", rec.CurrencyCode)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_Validation() {
	tests := []struct {
		name    string
		mutate  func(r *dto.CreateRecordRequest)
		wantErr error
	}{
		{"unknown kind", func(r *dto.CreateRecordRequest) { r.Kind = "GIFT" }, apperrors.ErrValidation},
		{"zero amount", func(r *dto.CreateRecordRequest) { r.Amount = dec("0") }, apperrors.ErrValidation},
		{"negative amount", func(r *dto.CreateRecordRequest) { r.Amount = dec("-1") }, apperrors.ErrValidation},
		{"three decimals", func(r *dto.CreateRecordRequest) { r.Amount = dec("1.005") }, apperrors.ErrValidation},
		{"missing date", func(r *dto.CreateRecordRequest) { r.RecordDate = time.Time{} }, apperrors.ErrValidation},
		{"unsupported currency", func(r *dto.CreateRecordRequest) { r.CurrencyCode = "BRL" }, apperrors.ErrInvalidCurrencyCode},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			req := suite.validRequest()
			tt.mutate(&req)

			_, err := suite.service.CreateRecord(suite.ctx, "u1", req)

			suite.ErrorIs(err, tt.wantErr)
		})
	}
	suite.mockRecordRepo.AssertNotCalled(suite.T(), "SaveRecord", mock.Anything, mock.Anything)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_RepoError() {
	dbErr := errors.New("insert failed")
	suite.mockRecordRepo.On("SaveRecord", suite.ctx, mock.Anything).Return(dbErr)

	_, err := suite.service.CreateRecord(suite.ctx, "u1", suite.validRequest())

	suite.ErrorIs(err, dbErr)
}

func (suite *RecordServiceTestSuite) stored(id, amount, currency string, daysAgo int) domain.MonetaryRecord {
	r := expense(id, amount, currency, "food")
	r.UserID = "u1"
	r.RecordDate = suite.now.AddDate(0, 0, -daysAgo)
	r.CreatedAt = r.RecordDate.Add(time.Hour)
	return r
}

func (suite *RecordServiceTestSuite) TestListConvertedRecords_PagesAndConverts() {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, "u1").Return(&domain.User{UserID: "u1", PreferredCurrencyCode: strPtr("USD")}, nil)
	suite.fetcher.On("FetchQuote", mock.Anything, "USD").Return(quote("USD", 1000, 1010), nil)
	records := []domain.MonetaryRecord{
		suite.stored("r1", "2010", "ARS", 1),
		suite.stored("r2", "3", "USD", 2),
		suite.stored("r3", "1", "ARS", 3),
	}
	suite.mockRecordRepo.On("ListRecords", suite.ctx, mock.MatchedBy(func(f domain.RecordFilter) bool {
		return f.UserID == "u1" && f.Limit == 3 && f.Kind == nil && f.AfterDate == nil
	})).Return(records, nil)

	page, err := suite.service.ListConvertedRecords(suite.ctx, "u1", dto.ListRecordsParams{Limit: 2})

	suite.Require().NoError(err)
	suite.Equal("USD", page.CurrencyCode)
	suite.Require().Len(page.Records, 2)
	suite.True(page.Records[0].WasConverted)
	suite.True(page.Records[0].ConvertedAmount.Equal(dec("2")), page.Records[0].ConvertedAmount.String())
	suite.False(page.Records[1].WasConverted)
	suite.True(page.Records[1].ConvertedAmount.Equal(dec("3")))
	suite.Equal(0, page.SkippedConversions)

	suite.Require().NotNil(page.NextToken)
	cursor, err := pagination.DecodeToken(*page.NextToken)
	suite.Require().NoError(err)
	suite.True(cursor.RecordDate.Equal(records[1].RecordDate))
	suite.True(cursor.CreatedAt.Equal(records[1].CreatedAt))
}

func (suite *RecordServiceTestSuite) TestListConvertedRecords_CursorAndSkipped() {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)
	suite.fetcher.On("FetchQuote", mock.Anything, "EUR").Return(domain.Quote{}, apperrors.ErrRateUnavailable)
	after := suite.now.AddDate(0, 0, -10)
	token := pagination.EncodeToken(pagination.Cursor{RecordDate: after, CreatedAt: after})
	suite.mockRecordRepo.On("ListRecords", suite.ctx, mock.MatchedBy(func(f domain.RecordFilter) bool {
		return f.Kind != nil && *f.Kind == domain.Expense && f.AfterDate != nil && f.AfterDate.Equal(after) &&
			f.AfterCreatedAt != nil && f.Limit == services.DefaultRecordPageSize+1
	})).Return([]domain.MonetaryRecord{suite.stored("r9", "4", "EUR", 11)}, nil)

	page, err := suite.service.ListConvertedRecords(suite.ctx, "u1", dto.ListRecordsParams{Kind: "expense", NextToken: token})

	suite.Require().NoError(err)
	suite.Nil(page.NextToken)
	suite.Equal(1, page.SkippedConversions)
	suite.True(page.Records[0].ConversionSkipped)
}

func (suite *RecordServiceTestSuite) TestListConvertedRecords_BadInput() {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)

	_, err := suite.service.ListConvertedRecords(suite.ctx, "u1", dto.ListRecordsParams{NextToken: "%%%"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ListConvertedRecords(suite.ctx, "u1", dto.ListRecordsParams{Kind: "GIFT"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRecordRepo.AssertNotCalled(suite.T(), "ListRecords", mock.Anything, mock.Anything)
}
