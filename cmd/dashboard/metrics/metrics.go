// Package metrics provides Prometheus instrumentation for the dashboard
// query service.
//
// Metrics exposed via /metrics:
//   - envsentry_query_seconds: Histogram of full query evaluation duration
//   - envsentry_query_rows: Gauge of rows matched by the last query
//   - envsentry_queries_total: Counter of evaluations by query mode
//   - envsentry_validation_errors_total: Counter of malformed boundary fields
//   - envsentry_store_errors_total: Counter of reading store read failures
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the dashboard service.
type Metrics struct {
	QuerySeconds          prometheus.Histogram
	QueryRows             prometheus.Gauge
	QueriesTotal          *prometheus.CounterVec
	ValidationErrorsTotal prometheus.Counter
	StoreErrorsTotal      prometheus.Counter
}

// New creates and registers all dashboard metrics.
func New() *Metrics {
	return &Metrics{
		QuerySeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "envsentry_query_seconds",
			Help:    "Time spent evaluating one window query",
			Buckets: prometheus.DefBuckets,
		}),

		QueryRows: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "envsentry_query_rows",
			Help: "Readings matched by the most recent window query",
		}),

		QueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "envsentry_queries_total",
			Help: "Total query evaluations by mode",
		}, []string{"mode"}),

		ValidationErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "envsentry_validation_errors_total",
			Help: "Total malformed boundary fields seen in query input",
		}),

		StoreErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "envsentry_store_errors_total",
			Help: "Total reading store read failures",
		}),
	}
}

// RecordQuery records one completed evaluation.
func (m *Metrics) RecordQuery(seconds float64, mode string, rows int) {
	m.QuerySeconds.Observe(seconds)
	m.QueriesTotal.WithLabelValues(mode).Inc()
	m.QueryRows.Set(float64(rows))
}

// RecordValidationErrors adds n malformed boundary fields.
func (m *Metrics) RecordValidationErrors(n int) {
	m.ValidationErrorsTotal.Add(float64(n))
}

// RecordStoreError increments the store failure counter.
func (m *Metrics) RecordStoreError() {
	m.StoreErrorsTotal.Inc()
}
