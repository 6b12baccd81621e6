// Command refresh_rates resolves every base/foreign rate from the quote source
// and prints it together with its inverse.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/finance_tracker/internal/adapters/cache"
	"github.com/SscSPs/finance_tracker/internal/adapters/quotes"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/SscSPs/finance_tracker/pkg/database"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const ratePrecision = 6

func main() {
	pflag.Bool("clear-cache", false, "drop cached rates before resolving")
	pflag.Bool("persist", false, "store a snapshot of every pair in the database (needs PGSQL_URL)")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		fmt.Fprintf(os.Stderr, "failed to bind flags: %v\n", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Error("Rate refresh failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	currencies := cfg.CurrencySet()
	rateCache := cache.NewMemoryRateCache(cfg.RatesCacheTTL, utils.SystemClock{}, logger)
	fetcher := quotes.NewDolarAPIFetcher(
		cfg.RatesAPIBaseURL,
		cfg.RatesForeignEndpoints,
		cfg.RatesFetchTimeout,
		quotes.WithLogger(logger),
	)

	if viper.GetBool("persist") {
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
		if err != nil {
			return err
		}
		defer database.ClosePgxPool(pool)

		repos := pgsql.NewRepositoryProvider(pool)
		svc := services.NewExchangeRateService(currencies, fetcher, rateCache, services.WithRateRepository(repos.ExchangeRateRepo))
		rates, err := svc.RefreshRates(ctx, services.SystemActor)
		if err != nil {
			return err
		}
		for _, rate := range rates {
			fmt.Fprintf(out, "1 %s = %s %s\n", rate.FromCurrencyCode, utils.FormatWithPrecision(rate.Rate, ratePrecision), rate.ToCurrencyCode)
		}
		fmt.Fprintf(out, "%d snapshots stored\n", len(rates))
		return nil
	}

	svc := services.NewExchangeRateService(currencies, fetcher, rateCache)
	if viper.GetBool("clear-cache") {
		svc.ClearCache(ctx)
	}
	return printRates(ctx, svc, currencies, out)
}

// printRates writes one line per foreign currency with the base rate and its inverse.
func printRates(ctx context.Context, svc portssvc.ExchangeRateResolverSvc, currencies domain.CurrencySet, out io.Writer) error {
	rates, err := svc.GetAllRates(ctx)
	if err != nil {
		return err
	}
	if len(rates) == 0 {
		return fmt.Errorf("no rate could be resolved for %v", currencies.Foreign)
	}

	for _, rate := range rates {
		inverse, err := svc.GetRate(ctx, rate.ToCurrencyCode, rate.FromCurrencyCode)
		if err != nil {
			fmt.Fprintf(out, "%s: 1 %s = %s %s (inverse unavailable)\n",
				rate.ToCurrencyCode, rate.FromCurrencyCode, utils.FormatWithPrecision(rate.Rate, ratePrecision), rate.ToCurrencyCode)
			continue
		}
		fmt.Fprintf(out, "%s: 1 %s = %s %s | 1 %s = %s %s\n",
			rate.ToCurrencyCode,
			rate.FromCurrencyCode, utils.FormatWithPrecision(rate.Rate, ratePrecision), rate.ToCurrencyCode,
			rate.ToCurrencyCode, utils.FormatWithPrecision(inverse, ratePrecision), rate.FromCurrencyCode)
	}
	return nil
}
