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
	"github.com/SscSPs/finance_tracker/internal/utils"
)

// currencyService exposes the configured currency set, decorated with the
// names and symbols stored in the currency catalogue.
type currencyService struct {
	BaseService
	currencies   domain.CurrencySet
	currencyRepo portsrepo.CurrencyRepositoryFacade
	clock        utils.Clock
}

// NewCurrencyService creates a currency service. currencyRepo may be nil, in
// which case currencies are reported by code only.
func NewCurrencyService(currencies domain.CurrencySet, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencies: currencies, currencyRepo: currencyRepo, clock: utils.SystemClock{}}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) SupportedCurrencies() domain.CurrencySet {
	return s.currencies
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code := domain.NormalizeCode(currencyCode)
	if !s.currencies.Supports(code) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrencyCode, currencyCode)
	}
	if s.currencyRepo == nil {
		c := s.bare(code)
		return &c, nil
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c := s.bare(code)
			return &c, nil
		}
		s.LogError(ctx, err, "Failed to get currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	currency.IsBase = s.currencies.IsBase(code)
	return currency, nil
}

// ListCurrencies returns every supported currency, base first. Catalogue rows
// for unsupported codes are ignored.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	catalogue := map[string]domain.Currency{}
	if s.currencyRepo != nil {
		stored, err := s.currencyRepo.ListCurrencies(ctx)
		if err != nil {
			s.LogError(ctx, err, "Failed to list currencies")
			return nil, fmt.Errorf("failed to list currencies in service: %w", err)
		}
		for _, c := range stored {
			catalogue[domain.NormalizeCode(c.CurrencyCode)] = c
		}
	}

	codes := s.currencies.Codes()
	result := make([]domain.Currency, 0, len(codes))
	for _, code := range codes {
		c, ok := catalogue[code]
		if !ok {
			c = s.bare(code)
		}
		c.CurrencyCode = code
		c.IsBase = s.currencies.IsBase(code)
		result = append(result, c)
	}
	return result, nil
}

// SyncCatalogue stores a code-only catalogue row for every configured currency
// the catalogue does not know yet. Existing rows are left untouched.
func (s *currencyService) SyncCatalogue(ctx context.Context) (int, error) {
	if s.currencyRepo == nil {
		return 0, nil
	}
	stored, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read currency catalogue")
		return 0, fmt.Errorf("failed to read currency catalogue: %w", err)
	}
	known := make(map[string]bool, len(stored))
	for _, c := range stored {
		known[domain.NormalizeCode(c.CurrencyCode)] = true
	}

	added := 0
	now := s.clock.Now()
	for _, code := range s.currencies.Codes() {
		if known[code] {
			continue
		}
		c := s.bare(code)
		c.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: SystemActor, LastUpdatedAt: now, LastUpdatedBy: SystemActor}
		if err := s.currencyRepo.SaveCurrency(ctx, c); err != nil {
			s.LogError(ctx, err, "Failed to add currency to catalogue", slog.String("currency_code", code))
			return added, fmt.Errorf("failed to add %s to currency catalogue: %w", code, err)
		}
		added++
	}
	if added > 0 {
		s.LogInfo(ctx, "Currency catalogue synced", slog.Int("added", added))
	}
	return added, nil
}

func (s *currencyService) bare(code string) domain.Currency {
	return domain.Currency{CurrencyCode: code, Name: code, IsBase: s.currencies.IsBase(code)}
}
