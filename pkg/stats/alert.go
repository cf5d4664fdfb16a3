package stats

import (
	"github.com/envsentry/envsentry/pkg/reading"
	"github.com/envsentry/envsentry/pkg/window"
)

// Alert message texts shown by the dashboard.
const (
	MsgAnomaly    = "Alert: Anomaly detected"
	MsgNoAnomaly  = "No anomaly detected"
	MsgHistorical = "Historical data: detector stopped"
)

// Alert is the user-visible anomaly alert state.
type Alert struct {
	Message string `json:"message"`
	Active  bool   `json:"active"`
}

// EvaluateAlert decides the alert state. In historical mode the alert is
// always suppressed. In real-time mode it is active exactly when the most
// recent reading of the unfiltered store carries an anomaly prediction;
// with no readings at all it stays inactive. The latest reading must come
// from the live tail of the store, not from the windowed query.
func EvaluateAlert(mode window.Mode, latest reading.Reading, found bool) Alert {
	if mode == window.ModeHistorical {
		return Alert{Message: MsgHistorical, Active: false}
	}

	if found && latest.Prediction == reading.ClassAnomaly {
		return Alert{Message: MsgAnomaly, Active: true}
	}

	return Alert{Message: MsgNoAnomaly, Active: false}
}
