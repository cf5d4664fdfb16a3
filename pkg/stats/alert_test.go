package stats

import (
	"testing"
	"time"

	"github.com/envsentry/envsentry/pkg/reading"
	"github.com/envsentry/envsentry/pkg/window"
)

func TestEvaluateAlert_RealTime(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	anomalous := reading.New(25.0, 55.0, 90.0, 1, ts)
	got := EvaluateAlert(window.ModeRealTime, anomalous, true)
	if !got.Active {
		t.Error("anomalous tail in real-time mode must activate the alert")
	}
	if got.Message != MsgAnomaly {
		t.Errorf("message = %q, want %q", got.Message, MsgAnomaly)
	}

	normal := reading.New(20.0, 50.0, 30.0, 0, ts)
	got = EvaluateAlert(window.ModeRealTime, normal, true)
	if got.Active {
		t.Error("normal tail must not activate the alert")
	}
	if got.Message != MsgNoAnomaly {
		t.Errorf("message = %q, want %q", got.Message, MsgNoAnomaly)
	}
}

func TestEvaluateAlert_HistoricalAlwaysSuppressed(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	anomalous := reading.New(25.0, 55.0, 90.0, 1, ts)

	got := EvaluateAlert(window.ModeHistorical, anomalous, true)
	if got.Active {
		t.Error("historical mode must suppress the alert regardless of data")
	}
	if got.Message != MsgHistorical {
		t.Errorf("message = %q, want %q", got.Message, MsgHistorical)
	}
}

func TestEvaluateAlert_EmptyStore(t *testing.T) {
	got := EvaluateAlert(window.ModeRealTime, reading.Reading{}, false)
	if got.Active {
		t.Error("empty store must leave the alert inactive")
	}
	if got.Message != MsgNoAnomaly {
		t.Errorf("message = %q, want %q", got.Message, MsgNoAnomaly)
	}
}
