package dto

import "time"

// RegisterRequest defines the data needed to create an account.
type RegisterRequest struct {
	Username              string `json:"username" binding:"required,min=3,max=50"`
	Name                  string `json:"name" binding:"required,max=100"`
	Password              string `json:"password" binding:"required,min=8,max=72"`
	PreferredCurrencyCode string `json:"preferredCurrencyCode" binding:"omitempty,currencycode"`
}

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
