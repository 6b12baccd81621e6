package services

import (
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/metrics"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
)

// NewServiceContainer wires every service. The quote fetcher and rate cache are
// built by the caller so that tools sharing the process can reach the same cache.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, fetcher portsrepo.QuoteFetcher, cache portsrepo.RateCache, m *metrics.Metrics) *portssvc.ServiceContainer {
	currencies := cfg.CurrencySet()
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(currencies, repos.CurrencyRepo)

	rateOptions := []ExchangeRateServiceOption{WithRateMetrics(m)}
	if repos.ExchangeRateRepo != nil {
		rateOptions = append(rateOptions, WithRateRepository(repos.ExchangeRateRepo))
	}
	container.ExchangeRate = NewExchangeRateService(currencies, fetcher, cache, rateOptions...)
	container.Converter = NewConverterService(container.ExchangeRate, currencies)
	container.Aggregation = NewAggregationService(container.Converter, currencies.Base, WithAggregationMetrics(m))

	container.User = NewUserService(repos.UserRepo, currencies)
	container.Auth = NewAuthService(cfg, repos.UserRepo, currencies)
	container.Record = NewRecordService(repos.RecordRepo, container.User, container.Aggregation, currencies)
	container.Reporting = NewReportingService(repos.RecordRepo, container.User, container.Aggregation)

	return container
}
