// Package stats computes the derived aggregates and the anomaly alert
// state shown on the dashboard. All computations are per-invocation and
// side-effect free.
package stats

import (
	"github.com/envsentry/envsentry/pkg/reading"
)

// FieldSummary holds mean, minimum, and maximum of one numeric field over
// a filtered reading set.
type FieldSummary struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Summary is the aggregate over a filtered reading set. CountNormal and
// CountAnomaly count predictions exactly equal to 0 and 1; any other
// prediction value is a data-quality issue and counts toward neither
// bucket. LastPrediction is the prediction of the reading with the
// maximum timestamp, first-encountered on ties.
type Summary struct {
	Temperature    FieldSummary `json:"temperature"`
	Humidity       FieldSummary `json:"humidity"`
	SoundVolume    FieldSummary `json:"sound_volume"`
	CountNormal    int          `json:"count_normal"`
	CountAnomaly   int          `json:"count_anomaly"`
	LastPrediction int          `json:"last_prediction"`
}

// Summarize computes the Summary over readings. The second return value
// is false for an empty input: the caller must render the no-data state
// instead of computing over an empty set.
func Summarize(readings []reading.Reading) (Summary, bool) {
	if len(readings) == 0 {
		return Summary{}, false
	}

	var s Summary
	var sumT, sumH, sumV float64

	first := readings[0]
	s.Temperature.Min, s.Temperature.Max = first.Temperature, first.Temperature
	s.Humidity.Min, s.Humidity.Max = first.Humidity, first.Humidity
	s.SoundVolume.Min, s.SoundVolume.Max = first.SoundVolume, first.SoundVolume

	latest := first
	for _, r := range readings {
		sumT += r.Temperature
		sumH += r.Humidity
		sumV += r.SoundVolume

		s.Temperature.Min = min(s.Temperature.Min, r.Temperature)
		s.Temperature.Max = max(s.Temperature.Max, r.Temperature)
		s.Humidity.Min = min(s.Humidity.Min, r.Humidity)
		s.Humidity.Max = max(s.Humidity.Max, r.Humidity)
		s.SoundVolume.Min = min(s.SoundVolume.Min, r.SoundVolume)
		s.SoundVolume.Max = max(s.SoundVolume.Max, r.SoundVolume)

		switch r.Prediction {
		case reading.ClassNormal:
			s.CountNormal++
		case reading.ClassAnomaly:
			s.CountAnomaly++
		}

		if r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}

	n := float64(len(readings))
	s.Temperature.Mean = sumT / n
	s.Humidity.Mean = sumH / n
	s.SoundVolume.Mean = sumV / n
	s.LastPrediction = latest.Prediction

	return s, true
}
