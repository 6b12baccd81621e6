package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEndpoints = map[string]string{
	"usd": "/v1/dolares/oficial",
	"EUR": "/v1/cotizaciones/eur",
}

func newServer(t *testing.T, status int, body string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchQuoteSuccess(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"moneda":"USD","casa":"oficial","compra":880,"venta":920,"fechaActualizacion":"2024-03-10T12:00:00.000Z"}`))
	}))
	defer srv.Close()

	m := metrics.NewMetrics(prometheus.NewRegistry())
	f := NewDolarAPIFetcher(srv.URL+"/", testEndpoints, time.Second, WithMetrics(m))

	q, err := f.FetchQuote(context.Background(), "usd")
	require.NoError(t, err)
	assert.Equal(t, "/v1/dolares/oficial", gotPath)
	assert.Equal(t, "USD", q.CurrencyCode)
	assert.True(t, q.Bid.Equal(decimal.NewFromInt(880)))
	assert.True(t, q.Ask.Equal(decimal.NewFromInt(920)))
	assert.True(t, q.Midpoint().Equal(decimal.NewFromInt(900)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuoteFetchesTotal.WithLabelValues("USD", metrics.OutcomeSuccess)))
}

func TestFetchQuoteAcceptsDecimalStrings(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"compra":"1000.50","venta":"1050.50"}`, nil)
	f := NewDolarAPIFetcher(srv.URL, testEndpoints, time.Second)

	q, err := f.FetchQuote(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "1025.5", q.Midpoint().String())
}

func TestFetchQuoteUnknownCurrencyMakesNoCall(t *testing.T) {
	var calls int32
	srv := newServer(t, http.StatusOK, `{"compra":1,"venta":1}`, &calls)
	f := NewDolarAPIFetcher(srv.URL, testEndpoints, time.Second)

	_, err := f.FetchQuote(context.Background(), "GBP")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCurrencyCode)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFetchQuoteFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"non-200", http.StatusInternalServerError, `{"compra":1,"venta":1}`},
		{"malformed json", http.StatusOK, `{"compra":`},
		{"missing venta", http.StatusOK, `{"compra":900}`},
		{"zero compra", http.StatusOK, `{"compra":0,"venta":900}`},
		{"negative venta", http.StatusOK, `{"compra":900,"venta":-1}`},
		{"not a number", http.StatusOK, `{"compra":"abc","venta":900}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body, nil)
			m := metrics.NewMetrics(prometheus.NewRegistry())
			f := NewDolarAPIFetcher(srv.URL, testEndpoints, time.Second, WithMetrics(m))

			_, err := f.FetchQuote(context.Background(), "USD")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.QuoteFetchesTotal.WithLabelValues("USD", metrics.OutcomeFailure)))
		})
	}
}

func TestFetchQuoteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
		_, _ = w.Write([]byte(`{"compra":1,"venta":1}`))
	}))
	defer srv.Close()

	f := NewDolarAPIFetcher(srv.URL, testEndpoints, 20*time.Millisecond)
	_, err := f.FetchQuote(context.Background(), "USD")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestFetchQuoteUnreachable(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{}`, nil)
	url := srv.URL
	srv.Close()

	f := NewDolarAPIFetcher(url, testEndpoints, time.Second)
	_, err := f.FetchQuote(context.Background(), "EUR")
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestCurrencies(t *testing.T) {
	f := NewDolarAPIFetcher("http://example.invalid", testEndpoints, 0)
	assert.ElementsMatch(t, []string{"USD", "EUR"}, f.Currencies())
}
