// Package router configures HTTP routes for the predictor's ingestion
// API.
//
// Routes configured:
//   - POST /predict - Classify one reading, persist it, return the prediction
//   - GET /healthz - Health check endpoint (returns 200 OK)
//   - GET /metrics - Prometheus metrics endpoint
//
// A reading must carry all three sensor fields; a missing field is a 400.
// A store write failure is logged and counted but does not fail the
// response: the prediction is still returned so the ingestion client
// keeps its cadence.
package router

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/envsentry/envsentry/cmd/predictor/metrics"
	"github.com/envsentry/envsentry/pkg/httpx"
	"github.com/envsentry/envsentry/pkg/model"
	"github.com/envsentry/envsentry/pkg/reading"
	"github.com/envsentry/envsentry/pkg/storage"
)

// SetupRoutes configures the predictor HTTP endpoints.
func SetupRoutes(clf *model.Classifier, store storage.Store, m *metrics.Metrics, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/healthz", httpx.HealthHandler())
	mux.HandleFunc("/predict", handlePredict(clf, store, m, logger))
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// predictRequest uses pointers so an absent field is distinguishable
// from a legitimate zero value.
type predictRequest struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	SoundVolume *float64 `json:"sound_volume"`
}

type predictResponse struct {
	Prediction int     `json:"prediction"`
	Score      float64 `json:"score"`
}

// handlePredict returns the handler for POST /predict.
func handlePredict(clf *model.Classifier, store storage.Store, m *metrics.Metrics, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			httpx.WriteErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req predictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if req.Temperature == nil || req.Humidity == nil || req.SoundVolume == nil {
			httpx.WriteErrorMessage(w, http.StatusBadRequest, "incorrect data")
			return
		}

		start := time.Now()
		prediction, score := clf.Predict(*req.Temperature, *req.Humidity, *req.SoundVolume)

		if m != nil {
			m.RecordPrediction(prediction, time.Since(start).Seconds())
		}

		rd := reading.New(*req.Temperature, *req.Humidity, *req.SoundVolume, prediction, time.Now())
		if err := store.Append(r.Context(), rd); err != nil {
			logger.Error("failed to persist reading", "id", rd.ID, "error", err)
			if m != nil {
				m.RecordStoreError()
			}
		}

		logger.Debug("classified reading",
			"id", rd.ID,
			"prediction", prediction,
			"score", score,
		)

		if err := httpx.WriteJSON(w, http.StatusOK, predictResponse{Prediction: prediction, Score: score}); err != nil {
			logger.Error("failed to write predict response", "error", err)
		}
	}
}
