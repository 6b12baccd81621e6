package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "12.345", want: "12.35"},
		{in: "-12.345", want: "-12.35"},
		{in: "12.344", want: "12.34"},
		{in: "0.005", want: "0.01"},
		{in: "100", want: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := utils.RoundAmount(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "12.35", utils.FormatWithPrecision(decimal.RequireFromString("12.3456"), 2))
	assert.Equal(t, "1005.000000", utils.FormatWithPrecision(decimal.NewFromInt(1005), 6))
}

func TestPasswordHashing(t *testing.T) {
	_, err := utils.HashPassword("short")
	assert.Error(t, err)

	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("correct horse", hash))
	assert.False(t, utils.CheckPasswordHash("wrong horse", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	const secret = "test-secret"
	now := time.Now()

	token, err := utils.GenerateJWT("user-1", secret, now, time.Hour, "finance-tracker")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "finance-tracker", claims.Issuer)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, err := utils.GenerateJWT("user-1", secret, now.Add(-2*time.Hour), time.Hour, "finance-tracker")
	require.NoError(t, err)
	_, err = utils.ParseAndValidateJWT(expired, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSystemClock(t *testing.T) {
	var clock utils.Clock = utils.SystemClock{}
	before := time.Now()
	assert.False(t, clock.Now().Before(before))
}
