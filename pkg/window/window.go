// Package window implements the time-window filtering that drives the
// dashboard: boundary validation, interval filtering of the reading history,
// and real-time vs historical mode inference.
//
// All functions are pure. Mode classification depends on a caller-supplied
// "now" so it stays testable without touching the system clock.
package window

import (
	"fmt"
	"strings"
	"time"

	"github.com/envsentry/envsentry/pkg/reading"
)

// Boundary string layouts. Any other lexical form is a validation error,
// never a parse attempt with fallback.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Window is the result of validating a BoundaryInput: the subset of
// boundaries that parsed, plus one error message per malformed non-empty
// field. A boundary that failed validation acts as absent downstream.
type Window struct {
	StartDate    time.Time
	HasStartDate bool
	EndDate      time.Time
	HasEndDate   bool
	StartTime    time.Time
	HasStartTime bool
	EndTime      time.Time
	HasEndTime   bool

	Errors []string
}

// ErrorText returns the concatenation of all per-field error messages,
// empty when every present field parsed.
func (w Window) ErrorText() string {
	return strings.Join(w.Errors, "")
}

// Constrained reports whether at least one boundary parsed successfully.
func (w Window) Constrained() bool {
	return w.HasStartDate || w.HasEndDate || w.HasStartTime || w.HasEndTime
}

// Validate turns the four raw boundary strings into a Window. Absent or
// empty fields impose no constraint and emit no error. Malformed fields
// record an error naming the field, the offending value, and the expected
// format; validation never short-circuits.
func Validate(in reading.BoundaryInput) Window {
	var w Window
	if in.Empty() {
		return w
	}

	w.StartDate, w.HasStartDate = parseField(&w, "start date", in.StartDate, DateLayout, "YYYY-MM-DD")
	w.EndDate, w.HasEndDate = parseField(&w, "end date", in.EndDate, DateLayout, "YYYY-MM-DD")
	w.StartTime, w.HasStartTime = parseField(&w, "start time", in.StartTime, TimeLayout, "HH:MM")
	w.EndTime, w.HasEndTime = parseField(&w, "end time", in.EndTime, TimeLayout, "HH:MM")

	return w
}

func parseField(w *Window, name, value, layout, want string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := parseBoundary(layout, value)
	if err != nil {
		w.Errors = append(w.Errors, fmt.Sprintf("Invalid %s format: %s. Expected format: %s. ", name, value, want))
		return time.Time{}, false
	}
	return t, true
}

// parseBoundary parses a boundary string in its exact lexical form.
// time.Parse alone accepts one-digit numeric fields ("8:30", "2024-3-01"),
// so the value must first have the layout's exact width.
func parseBoundary(layout, value string) (time.Time, error) {
	if len(value) != len(layout) {
		return time.Time{}, fmt.Errorf("value %q does not match layout %q", value, layout)
	}
	return time.Parse(layout, value)
}
