package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Business Metrics
	RPCRequestsTotal       *prometheus.CounterVec
	RPCErrorsTotal         *prometheus.CounterVec
	TransactionTransitions *prometheus.CounterVec
	TransactionReplays     *prometheus.CounterVec
	AccountCredits         prometheus.Counter

	// Database Metrics
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBQueryDuration    *prometheus.HistogramVec
	DBQueriesTotal     *prometheus.CounterVec
	DBConnectionErrors prometheus.Counter

	// Validation Metrics
	ValidationErrors *prometheus.CounterVec
}

// NewMetrics registers every collector with reg. Tests pass a fresh prometheus.NewRegistry().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paygate_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paygate_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "paygate_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		HTTPResponseSizeBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paygate_http_response_size_bytes",
				Help:    "Size of HTTP responses in bytes",
				Buckets: []float64{100, 1000, 10_000, 100_000, 1_000_000},
			},
			[]string{"method", "path", "status_code"},
		),

		RPCRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paygate_rpc_requests_total",
				Help: "Total number of provider RPC calls by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		RPCErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paygate_rpc_errors_total",
				Help: "Total number of RPC errors returned to the provider",
			},
			[]string{"method", "code"},
		),
		TransactionTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paygate_transaction_transitions_total",
				Help: "Total number of applied transaction state transitions",
			},
			[]string{"from", "to"},
		),
		TransactionReplays: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paygate_transaction_replays_total",
				Help: "Total number of idempotent replays answered from stored state",
			},
			[]string{"method"},
		),
		AccountCredits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "paygate_account_credits_total",
				Help: "Total number of accounts credited after a performed transaction",
			},
		),

		DBConnectionsInUse: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "paygate_db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),
		DBConnectionsIdle: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "paygate_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paygate_db_query_duration_seconds",
				Help:    "Duration of database queries in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"operation", "table"},
		),
		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paygate_db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table", "status"},
		),
		DBConnectionErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "paygate_db_connection_errors_total",
				Help: "Total number of database connection errors",
			},
		),

		ValidationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paygate_validation_errors_total",
				Help: "Total number of validation errors",
			},
			[]string{"field", "tag"},
		),
	}
}

// --- Recording Methods ---

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration, responseSize int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
	m.HTTPResponseSizeBytes.WithLabelValues(method, path, statusCode).Observe(float64(responseSize))
}

func (m *Metrics) RecordRPC(method, outcome string) {
	m.RPCRequestsTotal.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) RecordRPCError(method string, code int) {
	m.RPCErrorsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

func (m *Metrics) RecordTransition(from, to string) {
	m.TransactionTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) RecordReplay(method string) {
	m.TransactionReplays.WithLabelValues(method).Inc()
}

func (m *Metrics) RecordAccountCredit() {
	m.AccountCredits.Inc()
}

func (m *Metrics) RecordDBQuery(operation, table, status string, duration time.Duration) {
	m.DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func (m *Metrics) RecordDBConnectionError() {
	m.DBConnectionErrors.Inc()
}

func (m *Metrics) RecordValidationError(field, tag string) {
	m.ValidationErrors.WithLabelValues(field, tag).Inc()
}
