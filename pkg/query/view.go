package query

import (
	"fmt"
	"time"

	"github.com/envsentry/envsentry/pkg/reading"
	"github.com/envsentry/envsentry/pkg/stats"
	"github.com/envsentry/envsentry/pkg/window"
)

// NoData is the placeholder text rendered wherever an aggregate is
// undefined because no reading matched the window.
const NoData = "N/A"

// Series is one line-chart series: values against timestamps, in
// chronological order.
type Series struct {
	Timestamps []time.Time `json:"timestamps"`
	Values     []float64   `json:"values"`
}

// Averages holds the formatted per-field mean strings, e.g. "22.50 °C".
type Averages struct {
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	SoundVolume string `json:"sound_volume"`
}

// Distribution is the two-bucket prediction count for the bar chart.
type Distribution struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// Result is the complete output of one query evaluation, shaped for the
// presentation layer: the record table, the three chart series, formatted
// aggregate texts, the validation error string, the query mode, and the
// alert state. Summary is nil in the no-data case.
//
// StoreError reports that the history read failed and the result degraded
// to the no-data view. It is instrumentation state for the caller, not
// part of the wire view.
type Result struct {
	Records         []reading.Reading `json:"records"`
	Temperature     Series            `json:"temperature"`
	Humidity        Series            `json:"humidity"`
	SoundVolume     Series            `json:"sound_volume"`
	Averages        Averages          `json:"averages"`
	MinMax          string            `json:"min_max"`
	Distribution    Distribution      `json:"distribution"`
	ValidationError string            `json:"validation_error"`
	BoundaryErrors  []string          `json:"boundary_errors,omitempty"`
	Mode            window.Mode       `json:"mode"`
	Alert           stats.Alert       `json:"alert"`
	Summary         *stats.Summary    `json:"summary,omitempty"`
	StoreError      bool              `json:"-"`
}

// NoData reports whether the result represents the empty-window state.
func (r Result) NoData() bool {
	return r.Summary == nil
}

func noDataResult(w window.Window, mode window.Mode) Result {
	return Result{
		Records:         []reading.Reading{},
		Averages:        Averages{Temperature: NoData, Humidity: NoData, SoundVolume: NoData},
		MinMax:          NoData,
		Distribution:    distributionCounts(0, 0),
		ValidationError: w.ErrorText(),
		BoundaryErrors:  w.Errors,
		Mode:            mode,
		Alert:           stats.EvaluateAlert(mode, reading.Reading{}, false),
	}
}

func seriesOf(rs []reading.Reading, field func(reading.Reading) float64) Series {
	s := Series{
		Timestamps: make([]time.Time, len(rs)),
		Values:     make([]float64, len(rs)),
	}
	for i, r := range rs {
		s.Timestamps[i] = r.Timestamp
		s.Values[i] = field(r)
	}
	return s
}

func formatAverages(s stats.Summary) Averages {
	return Averages{
		Temperature: fmt.Sprintf("%.2f °C", s.Temperature.Mean),
		Humidity:    fmt.Sprintf("%.2f %%", s.Humidity.Mean),
		SoundVolume: fmt.Sprintf("%.2f dB", s.SoundVolume.Mean),
	}
}

// formatMinMax lays the three lines out with the dashboard's fixed
// padding; the text renders in a preformatted block, so the widths are
// part of the contract.
func formatMinMax(s stats.Summary) string {
	return fmt.Sprintf(
		"Temperature:          Max = %.2f °C      Min = %.2f °C\n"+
			"Humidity:           Max = %.2f %%      Min = %.2f %%\n"+
			"Noise level:       Max = %.2f dB     Min = %.2f dB",
		s.Temperature.Max, s.Temperature.Min,
		s.Humidity.Max, s.Humidity.Min,
		s.SoundVolume.Max, s.SoundVolume.Min,
	)
}

func distributionOf(s stats.Summary) Distribution {
	return distributionCounts(s.CountNormal, s.CountAnomaly)
}

func distributionCounts(normal, anomaly int) Distribution {
	return Distribution{
		Labels: []string{"Non-Anomalies (0)", "Anomalies (1)"},
		Counts: []int{normal, anomaly},
	}
}
