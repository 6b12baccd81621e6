package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/metrics"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 5 * time.Second

// dolarAPIResponse is the subset of the dolarapi.com payload we read.
// Pointers distinguish a missing field from an explicit zero.
type dolarAPIResponse struct {
	Compra *decimal.Decimal `json:"compra"`
	Venta  *decimal.Decimal `json:"venta"`
	Moneda string           `json:"moneda"`
	Casa   string           `json:"casa"`
}

// DolarAPIFetcher reads bid/ask quotes priced in the base currency from a
// dolarapi.com compatible service. It never retries.
type DolarAPIFetcher struct {
	baseURL    string
	endpoints  map[string]string
	httpClient *http.Client
	clock      utils.Clock
	metrics    *metrics.Metrics
	log        *slog.Logger
}

var _ portsrepo.QuoteFetcher = (*DolarAPIFetcher)(nil)

// FetcherOption configures a DolarAPIFetcher.
type FetcherOption func(*DolarAPIFetcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *DolarAPIFetcher) {
		f.httpClient = client
	}
}

// WithMetrics records one counter sample per call.
func WithMetrics(m *metrics.Metrics) FetcherOption {
	return func(f *DolarAPIFetcher) {
		f.metrics = m
	}
}

// WithClock stamps quotes with the given clock.
func WithClock(clock utils.Clock) FetcherOption {
	return func(f *DolarAPIFetcher) {
		f.clock = clock
	}
}

// WithLogger sets the logger used for upstream failures.
func WithLogger(log *slog.Logger) FetcherOption {
	return func(f *DolarAPIFetcher) {
		f.log = log
	}
}

// NewDolarAPIFetcher builds a fetcher. endpoints maps a foreign currency code to
// the path of its quote, e.g. "USD" -> "/v1/dolares/oficial".
func NewDolarAPIFetcher(baseURL string, endpoints map[string]string, timeout time.Duration, opts ...FetcherOption) *DolarAPIFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	normalized := make(map[string]string, len(endpoints))
	for code, path := range endpoints {
		normalized[domain.NormalizeCode(code)] = path
	}
	f := &DolarAPIFetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		endpoints:  normalized,
		httpClient: &http.Client{Timeout: timeout},
		clock:      utils.SystemClock{},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchQuote performs one GET for currencyCode and validates the payload.
func (f *DolarAPIFetcher) FetchQuote(ctx context.Context, currencyCode string) (domain.Quote, error) {
	code := domain.NormalizeCode(currencyCode)
	path, ok := f.endpoints[code]
	if !ok {
		f.metrics.ObserveQuoteFetch(code, metrics.OutcomeInvalid)
		return domain.Quote{}, fmt.Errorf("%w: no quote source for %q", apperrors.ErrInvalidCurrencyCode, currencyCode)
	}

	quote, err := f.fetch(ctx, code, path)
	if err != nil {
		f.metrics.ObserveQuoteFetch(code, metrics.OutcomeFailure)
		f.log.WarnContext(ctx, "Quote fetch failed",
			slog.String("currency", code),
			slog.String("error", err.Error()))
		return domain.Quote{}, fmt.Errorf("%w: %s: %v", apperrors.ErrRateUnavailable, code, err)
	}

	f.metrics.ObserveQuoteFetch(code, metrics.OutcomeSuccess)
	return quote, nil
}

func (f *DolarAPIFetcher) fetch(ctx context.Context, code, path string) (domain.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Quote{}, fmt.Errorf("upstream returned non-OK status: %d", resp.StatusCode)
	}

	var body dolarAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Quote{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if body.Compra == nil || body.Venta == nil {
		return domain.Quote{}, fmt.Errorf("response is missing compra or venta")
	}
	if !body.Compra.IsPositive() || !body.Venta.IsPositive() {
		return domain.Quote{}, fmt.Errorf("non-positive quote: compra=%s venta=%s", body.Compra, body.Venta)
	}

	return domain.Quote{
		CurrencyCode: code,
		Bid:          *body.Compra,
		Ask:          *body.Venta,
		FetchedAt:    f.clock.Now(),
	}, nil
}

// Currencies lists the codes this fetcher can quote.
func (f *DolarAPIFetcher) Currencies() []string {
	codes := make([]string, 0, len(f.endpoints))
	for code := range f.endpoints {
		codes = append(codes, code)
	}
	return codes
}
