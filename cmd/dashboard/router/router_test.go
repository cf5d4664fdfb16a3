package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/envsentry/envsentry/pkg/query"
	"github.com/envsentry/envsentry/pkg/reading"
	"github.com/envsentry/envsentry/pkg/storage"
)

var routerNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testMux(t *testing.T, rs ...reading.Reading) *http.ServeMux {
	t.Helper()

	store := storage.NewMemoryStore()
	for _, r := range rs {
		if err := store.Append(context.Background(), r); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := query.NewEngine(store, func() time.Time { return routerNow }, logger)
	return SetupRoutes(engine, nil, 5*time.Second, logger)
}

func TestHandleQuery(t *testing.T) {
	r0 := reading.New(20.0, 50.0, 30.0, 0, routerNow.Add(-2*time.Minute))
	r1 := reading.New(25.0, 55.0, 90.0, 1, routerNow.Add(-time.Minute))
	mux := testMux(t, r0, r1)

	req := httptest.NewRequest(http.MethodGet, "/api/query", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var res query.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Records) != 2 {
		t.Errorf("got %d records, want 2", len(res.Records))
	}
	if res.Mode != "real-time" {
		t.Errorf("mode = %q, want real-time", res.Mode)
	}
	if !res.Alert.Active {
		t.Error("alert must be active for an anomalous tail")
	}
	if res.Averages.Temperature != "22.50 °C" {
		t.Errorf("temperature average = %q, want %q", res.Averages.Temperature, "22.50 °C")
	}
}

func TestHandleQuery_BoundaryParameters(t *testing.T) {
	inWindow := reading.New(20.0, 50.0, 30.0, 0, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC))
	outOfWindow := reading.New(25.0, 55.0, 90.0, 1, time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC))
	mux := testMux(t, inWindow, outOfWindow)

	req := httptest.NewRequest(http.MethodGet,
		"/api/query?start-date=2024-06-09&end-date=2024-06-12", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var res query.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if res.Records[0].Temperature != 20.0 {
		t.Errorf("wrong record survived the filter: %+v", res.Records[0])
	}
	if res.Mode != "historical" {
		t.Errorf("mode = %q, want historical", res.Mode)
	}
}

func TestHandleQuery_MalformedBoundaryStillAnswers200(t *testing.T) {
	r := reading.New(20.0, 50.0, 30.0, 0, routerNow.Add(-time.Minute))
	mux := testMux(t, r)

	req := httptest.NewRequest(http.MethodGet, "/api/query?start-date=2024-13-01", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: malformed boundaries never fail the request", rec.Code, http.StatusOK)
	}

	var res query.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(res.ValidationError, "2024-13-01") {
		t.Errorf("validation error = %q, want it to name the offending value", res.ValidationError)
	}
	if len(res.Records) != 1 {
		t.Errorf("got %d records, want 1: a malformed boundary imposes no constraint", len(res.Records))
	}
}

func TestHandleQuery_EmptyStore(t *testing.T) {
	mux := testMux(t)

	req := httptest.NewRequest(http.MethodGet, "/api/query", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var res query.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.NoData() {
		t.Error("empty store must produce the no-data view")
	}
	if res.Averages.Temperature != query.NoData {
		t.Errorf("temperature average = %q, want %q", res.Averages.Temperature, query.NoData)
	}
}

func TestHandleQuery_MethodNotAllowed(t *testing.T) {
	mux := testMux(t)

	req := httptest.NewRequest(http.MethodPost, "/api/query", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleAlert(t *testing.T) {
	tail := reading.New(25.0, 55.0, 90.0, 1, routerNow.Add(-time.Minute))
	mux := testMux(t, tail)

	req := httptest.NewRequest(http.MethodGet, "/api/alert", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var alert struct {
		Message string `json:"message"`
		Active  bool   `json:"active"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&alert); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !alert.Active {
		t.Error("alert must be active for an anomalous tail")
	}
	if alert.Message != "Alert: Anomaly detected" {
		t.Errorf("message = %q, want %q", alert.Message, "Alert: Anomaly detected")
	}
}

func TestHandleAlert_HistoricalBoundariesSuppress(t *testing.T) {
	tail := reading.New(25.0, 55.0, 90.0, 1, routerNow.Add(-time.Minute))
	mux := testMux(t, tail)

	req := httptest.NewRequest(http.MethodGet, "/api/alert?start-date=2024-06-01", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var alert struct {
		Message string `json:"message"`
		Active  bool   `json:"active"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&alert); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if alert.Active {
		t.Error("historical boundaries must suppress the alert")
	}
	if alert.Message != "Historical data: detector stopped" {
		t.Errorf("message = %q, want %q", alert.Message, "Historical data: detector stopped")
	}
}

func TestHealthz(t *testing.T) {
	mux := testMux(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
