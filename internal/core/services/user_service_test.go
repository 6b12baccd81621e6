package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, testCurrencies)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func strPtr(s string) *string { return &s }

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound)

	user, err := suite.service.GetUserByID(suite.ctx, "missing")

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestUpdatePreferredCurrency_Normalizes() {
	updated := &domain.User{UserID: "u1", PreferredCurrencyCode: strPtr("USD")}
	suite.mockUserRepo.On("UpdatePreferredCurrency", suite.ctx, "u1", mock.MatchedBy(func(code *string) bool {
		return code != nil && *code == "USD"
	}), "u1").Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "u1").Return(updated, nil).Once()

	user, err := suite.service.UpdatePreferredCurrency(suite.ctx, "u1", strPtr(" usd "))

	suite.Require().NoError(err)
	suite.Equal("USD", *user.PreferredCurrencyCode)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdatePreferredCurrency_ResetToBase() {
	suite.mockUserRepo.On("UpdatePreferredCurrency", suite.ctx, "u1", (*string)(nil), "u1").Return(nil).Twice()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "u1").Return(&domain.User{UserID: "u1"}, nil)

	_, err := suite.service.UpdatePreferredCurrency(suite.ctx, "u1", nil)
	suite.Require().NoError(err)
	_, err = suite.service.UpdatePreferredCurrency(suite.ctx, "u1", strPtr(""))
	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdatePreferredCurrency_Unsupported() {
	_, err := suite.service.UpdatePreferredCurrency(suite.ctx, "u1", strPtr("BRL"))

	suite.ErrorIs(err, apperrors.ErrInvalidCurrencyCode)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdatePreferredCurrency", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdatePreferredCurrency_RepoError() {
	dbErr := errors.New("connection reset")
	suite.mockUserRepo.On("UpdatePreferredCurrency", suite.ctx, "u1", mock.Anything, "u1").Return(dbErr)

	_, err := suite.service.UpdatePreferredCurrency(suite.ctx, "u1", strPtr("EUR"))

	suite.ErrorIs(err, dbErr)
}

func (suite *UserServiceTestSuite) TestDisplayCurrency() {
	tests := []struct {
		name      string
		preferred *string
		want      string
	}{
		{"no preference uses base", nil, "ARS"},
		{"preference", strPtr("eur"), "EUR"},
		{"unsupported preference falls back to base", strPtr("BRL"), "ARS"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			repo := new(MockUserRepository)
			repo.On("FindUserByID", mock.Anything, "u1").Return(&domain.User{UserID: "u1", PreferredCurrencyCode: tt.preferred}, nil)
			svc := services.NewUserService(repo, testCurrencies)

			got, err := svc.DisplayCurrency(suite.ctx, "u1")

			suite.Require().NoError(err)
			suite.Equal(tt.want, got)
		})
	}
}
