package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/google/uuid"
)

// authService registers users and issues access tokens.
type authService struct {
	BaseService
	cfg        *config.Config
	userRepo   portsrepo.UserRepositoryFacade
	currencies domain.CurrencySet
	clock      utils.Clock
}

// NewAuthService creates an auth service. The JWT secret, issuer and expiry come from cfg.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, currencies domain.CurrencySet) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, userRepo: userRepo, currencies: currencies, clock: utils.SystemClock{}}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}

	var preferred *string
	if code := domain.NormalizeCode(req.PreferredCurrencyCode); code != "" {
		if !s.currencies.Supports(code) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrencyCode, req.PreferredCurrencyCode)
		}
		preferred = &code
	}

	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check username", slog.String("username", username))
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := s.clock.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:                userID,
		Username:              username,
		Name:                  strings.TrimSpace(req.Name),
		PasswordHash:          hash,
		PreferredCurrencyCode: preferred,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", userID))
	return &user, nil
}

// Login returns ErrUnauthorized for unknown users and wrong passwords alike.
func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", time.Time{}, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return "", time.Time{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.DeletedAt != nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", time.Time{}, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	now := s.clock.Now()
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, now, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, now.Add(s.cfg.JWTExpiryDuration), nil
}
