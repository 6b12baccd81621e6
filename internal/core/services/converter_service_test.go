package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConvert_ZeroSkipsResolver(t *testing.T) {
	resolver := new(MockRateResolver)
	svc := services.NewConverterService(resolver, testCurrencies)

	got, err := svc.Convert(context.Background(), decimal.Zero, "EUR", "ARS")

	require.NoError(t, err)
	assert.True(t, got.IsZero())
	resolver.AssertNotCalled(t, "GetRate", mock.Anything, mock.Anything, mock.Anything)
}

func TestConvert_MultipliesAndRounds(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		want   string
	}{
		{"whole", "100", "1005", "100500.00"},
		{"inverse rate", "1000", "0.0011111111111111", "1.11"},
		{"half up", "1.005", "1", "1.01"},
		{"negative half away from zero", "-1.005", "1", "-1.01"},
		{"rounds down", "10.004", "1", "10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockRateResolver)
			resolver.On("GetRate", mock.Anything, "USD", "ARS").Return(dec(tt.rate), nil).Once()
			svc := services.NewConverterService(resolver, testCurrencies)

			got, err := svc.Convert(context.Background(), dec(tt.amount), "USD", "ARS")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
			assert.True(t, got.Equal(dec(tt.want)), got.String())
		})
	}
}

func TestConvert_ReturnsResolverError(t *testing.T) {
	resolver := new(MockRateResolver)
	resolver.On("GetRate", mock.Anything, "EUR", "ARS").Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()
	svc := services.NewConverterService(resolver, testCurrencies)

	got, err := svc.Convert(context.Background(), dec("10"), "EUR", "ARS")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
	assert.True(t, got.IsZero(), "the input amount is never passed through as converted")
}

func TestConvert_RejectsUnsupportedCodes(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		from, to string
	}{
		{"zero amount", decimal.Zero, "XXX", "YYY"},
		{"zero amount unsupported target", decimal.Zero, "USD", "GBP"},
		{"non zero amount", dec("10"), "GBP", "ARS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockRateResolver)
			svc := services.NewConverterService(resolver, testCurrencies)

			_, err := svc.Convert(context.Background(), tt.amount, tt.from, tt.to)

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCurrencyCode)
			resolver.AssertNotCalled(t, "GetRate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
