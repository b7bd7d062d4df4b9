package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Operation outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Recorder records control plane metrics
type Recorder interface {
	RecordOperation(operation, outcome string)
	RecordWalletMovement(kind string, amount decimal.Decimal)
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// PrometheusRecorder implements Recorder on a Prometheus registry
type PrometheusRecorder struct {
	registry        *prometheus.Registry
	operations      *prometheus.CounterVec
	walletMovements *prometheus.CounterVec
	httpRequests    *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a recorder and registers its collectors on registry
func NewPrometheusRecorder(registry *prometheus.Registry) *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: registry,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quizseason",
			Name:      "operations_total",
			Help:      "Control plane operations by outcome.",
		}, []string{"operation", "outcome"}),
		walletMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quizseason",
			Name:      "wallet_movement_amount_total",
			Help:      "Sum of wallet ledger amounts by entry kind.",
		}, []string{"kind"}),
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quizseason",
			Name:      "http_request_duration_seconds",
			Help:      "Admin API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	registry.MustRegister(r.operations, r.walletMovements, r.httpRequests)
	return r
}

func (r *PrometheusRecorder) RecordOperation(operation, outcome string) {
	r.operations.WithLabelValues(operation, outcome).Inc()
}

func (r *PrometheusRecorder) RecordWalletMovement(kind string, amount decimal.Decimal) {
	r.walletMovements.WithLabelValues(kind).Add(amount.InexactFloat64())
}

func (r *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// NoopRecorder discards everything
type NoopRecorder struct{}

func (NoopRecorder) RecordOperation(string, string)                        {}
func (NoopRecorder) RecordWalletMovement(string, decimal.Decimal)          {}
func (NoopRecorder) ObserveHTTPRequest(string, string, int, time.Duration) {}
