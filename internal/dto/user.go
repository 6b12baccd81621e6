package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID                string    `json:"userID"`
	Username              string    `json:"username"`
	Name                  string    `json:"name"`
	PreferredCurrencyCode *string   `json:"preferredCurrencyCode"`
	DisplayCurrencyCode   string    `json:"displayCurrencyCode"`
	CreatedAt             time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User, resolving the display currency against base.
func ToUserResponse(user *domain.User, baseCurrency string) UserResponse {
	return UserResponse{
		UserID:                user.UserID,
		Username:              user.Username,
		Name:                  user.Name,
		PreferredCurrencyCode: user.PreferredCurrencyCode,
		DisplayCurrencyCode:   user.DisplayCurrency(baseCurrency),
		CreatedAt:             user.CreatedAt,
	}
}

// UpdatePreferredCurrencyRequest sets the display currency. A null code resets it to the base currency.
type UpdatePreferredCurrencyRequest struct {
	CurrencyCode *string `json:"currencyCode" binding:"omitempty,currencycode"`
}
