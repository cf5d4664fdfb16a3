// Package metrics provides Prometheus instrumentation for the predictor
// service.
//
// Metrics exposed via /metrics:
//   - envsentry_ingest_total: Counter of ingested readings
//   - envsentry_predictions_total: Counter of predictions by class
//   - envsentry_predict_seconds: Histogram of classification duration
//   - envsentry_store_write_errors_total: Counter of reading store write failures
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the predictor service.
type Metrics struct {
	IngestTotal           prometheus.Counter
	PredictionsTotal      *prometheus.CounterVec
	PredictSeconds        prometheus.Histogram
	StoreWriteErrorsTotal prometheus.Counter
}

// New creates and registers all predictor metrics.
func New() *Metrics {
	return &Metrics{
		IngestTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "envsentry_ingest_total",
			Help: "Total readings accepted for classification",
		}),

		PredictionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "envsentry_predictions_total",
			Help: "Total predictions by class (0 normal, 1 anomaly)",
		}, []string{"class"}),

		PredictSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "envsentry_predict_seconds",
			Help:    "Time spent classifying one reading",
			Buckets: prometheus.DefBuckets,
		}),

		StoreWriteErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "envsentry_store_write_errors_total",
			Help: "Total reading store write failures",
		}),
	}
}

// RecordPrediction records one completed classification.
func (m *Metrics) RecordPrediction(class int, seconds float64) {
	m.IngestTotal.Inc()
	m.PredictionsTotal.WithLabelValues(strconv.Itoa(class)).Inc()
	m.PredictSeconds.Observe(seconds)
}

// RecordStoreError increments the store write failure counter.
func (m *Metrics) RecordStoreError() {
	m.StoreWriteErrorsTotal.Inc()
}
