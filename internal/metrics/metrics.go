package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes recorded by QuoteFetchesTotal.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid_currency"
)

// Metrics groups every collector the service exports. A nil *Metrics is valid
// and records nothing, so tests and tools can skip registration.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	QuoteFetchesTotal        *prometheus.CounterVec
	RateCacheLookupsTotal    *prometheus.CounterVec
	ConversionFallbacksTotal *prometheus.CounterVec
	RateRefreshesTotal       *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in production and prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		QuoteFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quote_fetches_total",
				Help: "Upstream quote fetches by currency and outcome",
			},
			[]string{"currency", "outcome"},
		),

		RateCacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Exchange rate cache lookups by result",
			},
			[]string{"result"},
		),

		ConversionFallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversion_fallbacks_total",
				Help: "Records aggregated with their unconverted amount because no rate was available",
			},
			[]string{"from", "to"},
		),

		RateRefreshesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_refreshes_total",
				Help: "Manual exchange rate refreshes by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(path, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(path, method).Observe(elapsed.Seconds())
	m.HTTPRequestsTotal.WithLabelValues(path, method, strconv.Itoa(status/100)+"xx").Inc()
}

// ObserveQuoteFetch records one upstream call.
func (m *Metrics) ObserveQuoteFetch(currency, outcome string) {
	if m == nil {
		return
	}
	m.QuoteFetchesTotal.WithLabelValues(currency, outcome).Inc()
}

// ObserveCacheLookup records a cache hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.RateCacheLookupsTotal.WithLabelValues(result).Inc()
}

// ObserveConversionFallback records a record summed without conversion.
func (m *Metrics) ObserveConversionFallback(from, to string) {
	if m == nil {
		return
	}
	m.ConversionFallbacksTotal.WithLabelValues(from, to).Inc()
}

// ObserveRefresh records the outcome of a manual refresh.
func (m *Metrics) ObserveRefresh(outcome string) {
	if m == nil {
		return
	}
	m.RateRefreshesTotal.WithLabelValues(outcome).Inc()
}
