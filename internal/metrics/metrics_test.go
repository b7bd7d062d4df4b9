package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCountsOperations(t *testing.T) {
	recorder := NewPrometheusRecorder(prometheus.NewRegistry())

	recorder.RecordOperation("season.create", OutcomeSuccess)
	recorder.RecordOperation("season.create", OutcomeSuccess)
	recorder.RecordOperation("season.create", OutcomeRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.operations.WithLabelValues("season.create", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.operations.WithLabelValues("season.create", OutcomeRejected)))
}

func TestPrometheusRecorderSumsWalletMovements(t *testing.T) {
	recorder := NewPrometheusRecorder(prometheus.NewRegistry())

	recorder.RecordWalletMovement("credit", decimal.NewFromInt(7_000_000))
	recorder.RecordWalletMovement("credit", decimal.NewFromInt(500_000))
	recorder.RecordWalletMovement("debit", decimal.NewFromInt(50_000))

	assert.Equal(t, 7_500_000.0, testutil.ToFloat64(recorder.walletMovements.WithLabelValues("credit")))
	assert.Equal(t, 50_000.0, testutil.ToFloat64(recorder.walletMovements.WithLabelValues("debit")))
}

func TestPrometheusRecorderHandlerExposesMetrics(t *testing.T) {
	recorder := NewPrometheusRecorder(prometheus.NewRegistry())
	recorder.RecordOperation("wallet.fund", OutcomeSuccess)
	recorder.ObserveHTTPRequest(http.MethodPost, "/api/v1/merchants/:merchantId/wallet/fund", http.StatusOK, 15*time.Millisecond)

	w := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `quizseason_operations_total{operation="wallet.fund",outcome="success"} 1`)
	assert.Contains(t, w.Body.String(), "quizseason_http_request_duration_seconds_bucket")
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.RecordOperation("season.create", OutcomeError)
		r.RecordWalletMovement("credit", decimal.NewFromInt(1))
		r.ObserveHTTPRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	})
}
