package window

import (
	"time"

	"github.com/envsentry/envsentry/pkg/reading"
)

// Filter retains the readings whose timestamp satisfies every parsed
// boundary of w. Date boundaries compare the timestamp's calendar date,
// time boundaries compare its time of day; each bound is inclusive and
// they combine with logical AND. The input is treated as unordered and
// the output preserves its order; consumers needing chronological order
// must sort explicitly.
func Filter(readings []reading.Reading, w Window) []reading.Reading {
	if len(readings) == 0 {
		return nil
	}
	if !w.Constrained() {
		out := make([]reading.Reading, len(readings))
		copy(out, readings)
		return out
	}

	out := make([]reading.Reading, 0, len(readings))
	for _, r := range readings {
		if w.HasStartDate && dateOrdinal(r.Timestamp) < dateOrdinal(w.StartDate) {
			continue
		}
		if w.HasEndDate && dateOrdinal(r.Timestamp) > dateOrdinal(w.EndDate) {
			continue
		}
		if w.HasStartTime && secondOfDay(r.Timestamp) < secondOfDay(w.StartTime) {
			continue
		}
		if w.HasEndTime && secondOfDay(r.Timestamp) > secondOfDay(w.EndTime) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// dateOrdinal collapses a timestamp's calendar date into a single
// comparable integer (yyyymmdd).
func dateOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// secondOfDay returns the timestamp's time of day in seconds since
// midnight. Readings carry seconds while boundaries only carry minutes,
// so comparisons happen at second resolution (a reading at 14:30:25 is
// past an end time of 14:30).
func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
