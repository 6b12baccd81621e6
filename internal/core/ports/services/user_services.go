package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// UserSvcFacade defines user profile operations.
type UserSvcFacade interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// UpdatePreferredCurrency sets the user's display currency; nil resets it to base.
	UpdatePreferredCurrency(ctx context.Context, userID string, code *string) (*domain.User, error)

	// DisplayCurrency resolves the currency the user's reports are expressed in.
	DisplayCurrency(ctx context.Context, userID string) (string, error)
}
