package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret"

type AuthServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockUserRepo = new(MockUserRepository)
	cfg := &config.Config{JWTSecret: testJWTSecret, JWTExpiryDuration: time.Hour, JWTIssuer: "finance-tracker"}
	suite.service = services.NewAuthService(cfg, suite.mockUserRepo, testCurrencies)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(nil, apperrors.ErrNotFound)
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "alice" && u.UserID != "" && u.CreatedBy == u.UserID &&
			u.PreferredCurrencyCode != nil && *u.PreferredCurrencyCode == "USD"
	})).Return(nil)

	user, err := suite.service.Register(suite.ctx, dto.RegisterRequest{
		Username:              " alice ",
		Name:                  "Alice",
		Password:              "correct horse",
		PreferredCurrencyCode: "usd",
	})

	suite.Require().NoError(err)
	suite.NotEqual("correct horse", user.PasswordHash)
	suite.True(utils.CheckPasswordHash("correct horse", user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_NoPreferenceMeansBase() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "bob").Return(nil, apperrors.ErrNotFound)
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.Anything).Return(nil)

	user, err := suite.service.Register(suite.ctx, dto.RegisterRequest{Username: "bob", Name: "Bob", Password: "password1"})

	suite.Require().NoError(err)
	suite.Nil(user.PreferredCurrencyCode)
	suite.Equal("ARS", user.DisplayCurrency(testCurrencies.Base))
}

func (suite *AuthServiceTestSuite) TestRegister_Duplicate() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(&domain.User{UserID: "u1"}, nil)

	_, err := suite.service.Register(suite.ctx, dto.RegisterRequest{Username: "alice", Name: "A", Password: "password1"})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRegister_UnsupportedCurrency() {
	_, err := suite.service.Register(suite.ctx, dto.RegisterRequest{Username: "alice", Name: "A", Password: "password1", PreferredCurrencyCode: "JPY"})

	suite.ErrorIs(err, apperrors.ErrInvalidCurrencyCode)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByUsername", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRegister_LookupError() {
	dbErr := errors.New("db down")
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(nil, dbErr)

	_, err := suite.service.Register(suite.ctx, dto.RegisterRequest{Username: "alice", Name: "A", Password: "password1"})

	suite.ErrorIs(err, dbErr)
}

func (suite *AuthServiceTestSuite) storedUser(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{UserID: "u1", Username: "alice", PasswordHash: hash}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "alice").Return(suite.storedUser("password1"), nil)

	token, expiresAt, err := suite.service.Login(suite.ctx, "alice", "password1")

	suite.Require().NoError(err)
	claims, err := utils.ParseAndValidateJWT(token, testJWTSecret)
	suite.Require().NoError(err)
	suite.Equal("u1", claims.Subject)
	suite.Equal("finance-tracker", claims.Issuer)
	suite.WithinDuration(time.Now().Add(time.Hour), expiresAt, time.Minute)
}

func (suite *AuthServiceTestSuite) TestLogin_Rejected() {
	deleted := suite.storedUser("password1")
	now := time.Now()
	deleted.DeletedAt = &now

	tests := []struct {
		name     string
		username string
		password string
		setup    func(repo *MockUserRepository)
	}{
		{"unknown user", "ghost", "password1", func(repo *MockUserRepository) {
			repo.On("FindUserByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)
		}},
		{"wrong password", "alice", "nope", func(repo *MockUserRepository) {
			repo.On("FindUserByUsername", mock.Anything, "alice").Return(suite.storedUser("password1"), nil)
		}},
		{"deleted user", "alice", "password1", func(repo *MockUserRepository) {
			repo.On("FindUserByUsername", mock.Anything, "alice").Return(deleted, nil)
		}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			repo := new(MockUserRepository)
			tt.setup(repo)
			svc := services.NewAuthService(&config.Config{JWTSecret: testJWTSecret, JWTExpiryDuration: time.Hour}, repo, testCurrencies)

			token, _, err := svc.Login(suite.ctx, tt.username, tt.password)

			suite.ErrorIs(err, apperrors.ErrUnauthorized)
			suite.Empty(token)
		})
	}
}
