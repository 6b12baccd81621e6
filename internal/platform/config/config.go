package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret       = "a-very-secret-key-should-be-longer-and-random"
	defaultRatesEndpoints  = "USD=/v1/dolares/oficial,EUR=/v1/cotizaciones/eur"
	defaultRatesCacheTTL   = time.Hour
	defaultRatesTimeout    = 5 * time.Second
	defaultJWTExpiry       = time.Hour
	defaultRatesBaseURL    = "https://dolarapi.com"
	defaultRatesBase       = "ARS"
	defaultRateLimit       = "100-M"
	defaultJWTIssuer       = "finance-tracker"
	defaultCORSAllowOrigin = "http://localhost:3000"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	RunMigrations     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Quote source and rate cache
	RatesAPIBaseURL        string
	RatesBaseCurrency      string
	RatesForeignCurrencies []string          // configuration order
	RatesForeignEndpoints  map[string]string // code -> path
	RatesCacheTTL          time.Duration
	RatesFetchTimeout      time.Duration

	RateLimit          string // ulule formatted, e.g. "100-M"
	CORSAllowedOrigins []string
}

// CurrencySet returns the configured base and foreign currencies.
func (c *Config) CurrencySet() domain.CurrencySet {
	return domain.NewCurrencySet(c.RatesBaseCurrency, c.RatesForeignCurrencies)
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry.String())
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("RATES_API_BASE_URL", defaultRatesBaseURL)
	viper.SetDefault("RATES_BASE_CURRENCY", defaultRatesBase)
	viper.SetDefault("RATES_FOREIGN_ENDPOINTS", defaultRatesEndpoints)
	viper.SetDefault("RATES_CACHE_TTL", defaultRatesCacheTTL.String())
	viper.SetDefault("RATES_FETCH_TIMEOUT", defaultRatesTimeout.String())
	viper.SetDefault("RATE_LIMIT", defaultRateLimit)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", defaultCORSAllowOrigin)

	// Environment variables override .env values and defaults.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry)
	cfg.RatesCacheTTL = durationOrDefault("RATES_CACHE_TTL", defaultRatesCacheTTL)
	cfg.RatesFetchTimeout = durationOrDefault("RATES_FETCH_TIMEOUT", defaultRatesTimeout)

	cfg.RatesAPIBaseURL = strings.TrimRight(viper.GetString("RATES_API_BASE_URL"), "/")
	cfg.RatesBaseCurrency = domain.NormalizeCode(viper.GetString("RATES_BASE_CURRENCY"))
	if cfg.RatesBaseCurrency == "" {
		return nil, fmt.Errorf("RATES_BASE_CURRENCY must not be empty")
	}

	codes, endpoints, err := ParseEndpoints(viper.GetString("RATES_FOREIGN_ENDPOINTS"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATES_FOREIGN_ENDPOINTS: %w", err)
	}
	if _, clash := endpoints[cfg.RatesBaseCurrency]; clash {
		return nil, fmt.Errorf("invalid RATES_FOREIGN_ENDPOINTS: base currency %s cannot have a quote endpoint", cfg.RatesBaseCurrency)
	}
	cfg.RatesForeignCurrencies = codes
	cfg.RatesForeignEndpoints = endpoints

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RunMigrations = viper.GetBool("RUN_MIGRATIONS")

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

// ParseEndpoints reads "USD=/v1/dolares/oficial,EUR=/v1/cotizaciones/eur"
// into the ordered list of codes and a code -> path map.
func ParseEndpoints(raw string) ([]string, map[string]string, error) {
	endpoints := make(map[string]string)
	var codes []string
	for _, item := range splitList(raw) {
		code, path, ok := strings.Cut(item, "=")
		code = domain.NormalizeCode(code)
		path = strings.TrimSpace(path)
		if !ok || code == "" || path == "" {
			return nil, nil, fmt.Errorf("entry %q is not CODE=/path", item)
		}
		if _, dup := endpoints[code]; dup {
			return nil, nil, fmt.Errorf("currency %s listed twice", code)
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		endpoints[code] = path
		codes = append(codes, code)
	}
	return codes, endpoints, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
