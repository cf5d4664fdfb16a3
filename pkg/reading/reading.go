// Package reading defines the core data types shared by the envsentry services:
// the sensor Reading persisted by the predictor and the raw filter boundaries
// supplied by the dashboard on every refresh.
package reading

import (
	"time"

	"github.com/google/uuid"
)

// Prediction classes produced by the anomaly classifier.
const (
	ClassNormal  = 0
	ClassAnomaly = 1
)

// Reading is one ingested sensor sample with its anomaly prediction.
// A Reading is immutable once stored; the reading store is append-only.
type Reading struct {
	ID          uuid.UUID `json:"id"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	SoundVolume float64   `json:"sound_volume"`
	Prediction  int       `json:"prediction"`
	Timestamp   time.Time `json:"timestamp"`
}

// New creates a Reading with a fresh ID and the given persistence timestamp.
func New(temperature, humidity, soundVolume float64, prediction int, ts time.Time) Reading {
	return Reading{
		ID:          uuid.New(),
		Temperature: temperature,
		Humidity:    humidity,
		SoundVolume: soundVolume,
		Prediction:  prediction,
		Timestamp:   ts,
	}
}

// BoundaryInput holds the four optional raw filter strings from the caller.
// Each field is independently optional and independently well- or malformed;
// an empty string imposes no constraint.
type BoundaryInput struct {
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
}

// Empty reports whether no boundary field is set at all.
func (b BoundaryInput) Empty() bool {
	return b.StartDate == "" && b.EndDate == "" && b.StartTime == "" && b.EndTime == ""
}
