// Package router configures HTTP routes for the dashboard query service.
//
// Routes configured:
//   - GET /api/query?start-date=&end-date=&start-time=&end-time= - Full window query evaluation
//   - GET /api/alert - Alert state against the live tail of the store
//   - GET /healthz - Health check endpoint (returns 200 OK)
//   - GET /metrics - Prometheus metrics endpoint
//
// The four boundary parameters are independently optional; malformed
// values never fail the request. The evaluation result carries the
// inline error text the presentation layer renders next to the filter
// controls, so /api/query always answers 200 with a complete view.
package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/envsentry/envsentry/cmd/dashboard/metrics"
	"github.com/envsentry/envsentry/pkg/httpx"
	"github.com/envsentry/envsentry/pkg/query"
	"github.com/envsentry/envsentry/pkg/reading"
)

// SetupRoutes configures the dashboard HTTP endpoints.
func SetupRoutes(engine *query.Engine, m *metrics.Metrics, queryTimeout time.Duration, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/healthz", httpx.HealthHandler())
	mux.HandleFunc("/api/query", handleQuery(engine, m, queryTimeout, logger))
	mux.HandleFunc("/api/alert", handleAlert(engine, queryTimeout, logger))
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func boundaryInput(r *http.Request) reading.BoundaryInput {
	q := r.URL.Query()
	return reading.BoundaryInput{
		StartDate: q.Get("start-date"),
		EndDate:   q.Get("end-date"),
		StartTime: q.Get("start-time"),
		EndTime:   q.Get("end-time"),
	}
}

// handleQuery returns the handler for GET /api/query.
func handleQuery(engine *query.Engine, m *metrics.Metrics, timeout time.Duration, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httpx.WriteErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		start := time.Now()
		res := engine.Evaluate(ctx, boundaryInput(r))

		if m != nil {
			m.RecordQuery(time.Since(start).Seconds(), string(res.Mode), len(res.Records))
			if len(res.BoundaryErrors) > 0 {
				m.RecordValidationErrors(len(res.BoundaryErrors))
			}
			if res.StoreError {
				m.RecordStoreError()
			}
		}

		if err := httpx.WriteJSON(w, http.StatusOK, res); err != nil {
			logger.Error("failed to write query response", "error", err)
		}
	}
}

// handleAlert returns the handler for GET /api/alert. The alert endpoint
// runs on its own refresh cadence and always reflects the unfiltered
// store tail; boundary parameters only contribute the mode that gates it.
func handleAlert(engine *query.Engine, timeout time.Duration, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httpx.WriteErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		alert := engine.AlertState(ctx, boundaryInput(r))
		if err := httpx.WriteJSON(w, http.StatusOK, alert); err != nil {
			logger.Error("failed to write alert response", "error", err)
		}
	}
}
