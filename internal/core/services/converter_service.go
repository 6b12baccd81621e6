package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// converterService multiplies amounts by resolved rates and quantizes to cents.
type converterService struct {
	BaseService
	rates      portssvc.ExchangeRateResolverSvc
	currencies domain.CurrencySet
}

// NewConverterService creates a converter backed by the given resolver.
// Codes outside currencies are rejected before any rate is resolved.
func NewConverterService(rates portssvc.ExchangeRateResolverSvc, currencies domain.CurrencySet) portssvc.ConverterSvc {
	return &converterService{rates: rates, currencies: currencies}
}

var _ portssvc.ConverterSvc = (*converterService)(nil)

// Convert returns amount expressed in toCode, rounded half up to 2 places.
// A zero amount never consults the resolver; same-currency pairs resolve to 1.
// Resolver errors are returned as is.
func (s *converterService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	for _, code := range []string{fromCode, toCode} {
		if !s.currencies.Supports(code) {
			return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrencyCode, code)
		}
	}
	if amount.IsZero() {
		return decimal.Zero, nil
	}
	rate, err := s.rates.GetRate(ctx, fromCode, toCode)
	if err != nil {
		return decimal.Zero, err
	}
	return utils.RoundAmount(amount.Mul(rate)), nil
}
