package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
)

type userService struct {
	BaseService
	userRepo   portsrepo.UserRepositoryFacade
	currencies domain.CurrencySet
}

// NewUserService creates a user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, currencies domain.CurrencySet) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, currencies: currencies}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) UpdatePreferredCurrency(ctx context.Context, userID string, code *string) (*domain.User, error) {
	var normalized *string
	if code != nil && domain.NormalizeCode(*code) != "" {
		c := domain.NormalizeCode(*code)
		if !s.currencies.Supports(c) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrencyCode, *code)
		}
		normalized = &c
	}

	if err := s.userRepo.UpdatePreferredCurrency(ctx, userID, normalized, userID); err != nil {
		s.LogError(ctx, err, "Failed to update preferred currency", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update preferred currency: %w", err)
	}
	s.LogInfo(ctx, "Preferred currency updated", slog.String("user_id", userID))
	return s.GetUserByID(ctx, userID)
}

// DisplayCurrency returns the user's preferred currency, or the base when none
// is set or the preference is no longer supported.
func (s *userService) DisplayCurrency(ctx context.Context, userID string) (string, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	code := user.DisplayCurrency(s.currencies.Base)
	if !s.currencies.Supports(code) {
		s.LogWarn(ctx, "Preferred currency no longer supported, using base",
			slog.String("user_id", userID),
			slog.String("currency_code", code))
		return s.currencies.Base, nil
	}
	return code, nil
}
