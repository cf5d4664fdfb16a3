package window

import (
	"time"

	"github.com/envsentry/envsentry/pkg/reading"
)

// Mode classifies a query as watching the live feed or inspecting history.
type Mode string

const (
	ModeRealTime   Mode = "real-time"
	ModeHistorical Mode = "historical"
)

// ClassifyMode decides RealTime vs Historical from the raw boundary input
// and a single evaluation instant. Precedence, first match wins:
//
//  1. end date present, parses, and is strictly before now's calendar
//     date -> historical
//  2. end time present, parses, and is strictly before now's time of
//     day -> historical
//  3. start date or start time non-empty, regardless of whether they
//     parse -> historical
//  4. otherwise -> real-time
//
// A window anchored to a past end boundary, or any explicit start
// boundary, means the caller is inspecting history rather than watching
// the live feed. The caller must pass one consistent now per evaluation
// so rules 1 and 2 cannot disagree across a midnight or second boundary.
func ClassifyMode(in reading.BoundaryInput, now time.Time) Mode {
	if in.EndDate != "" {
		if end, err := parseBoundary(DateLayout, in.EndDate); err == nil {
			if dateOrdinal(end) < dateOrdinal(now) {
				return ModeHistorical
			}
		}
	}

	if in.EndTime != "" {
		if end, err := parseBoundary(TimeLayout, in.EndTime); err == nil {
			if secondOfDay(end) < secondOfDay(now) {
				return ModeHistorical
			}
		}
	}

	// A present start boundary forces historical even when it does not
	// parse; this mirrors the observed dashboard behavior.
	if in.StartDate != "" || in.StartTime != "" {
		return ModeHistorical
	}

	return ModeRealTime
}
