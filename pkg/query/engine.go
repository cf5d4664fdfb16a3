// Package query implements the window query engine: one stateless
// evaluation pass over the full reading history, producing everything the
// dashboard renders for a given set of filter boundaries.
//
// Each evaluation is independent: validate the boundaries, classify the
// query mode against a single evaluation instant, filter and sort the
// history, aggregate, and derive the alert state. Nothing is cached
// across calls; the full history is re-read from the store every time.
package query

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/envsentry/envsentry/pkg/reading"
	"github.com/envsentry/envsentry/pkg/stats"
	"github.com/envsentry/envsentry/pkg/storage"
	"github.com/envsentry/envsentry/pkg/window"
)

// Clock supplies the evaluation instant. Injected so mode inference stays
// deterministic in tests.
type Clock func() time.Time

// Engine evaluates dashboard queries against a reading store.
type Engine struct {
	store  storage.Store
	now    Clock
	logger *slog.Logger
}

// NewEngine creates an Engine. A nil clock means time.Now.
func NewEngine(store storage.Store, now Clock, logger *slog.Logger) *Engine {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, now: now, logger: logger}
}

// Evaluate runs one full evaluation pass for the given boundary input.
//
// A store read failure is not fatal: the result degrades to the no-data
// view for this invocation and the next refresh tries again. Malformed
// boundaries surface in Result.ValidationError while the remaining valid
// boundaries still apply.
func (e *Engine) Evaluate(ctx context.Context, in reading.BoundaryInput) Result {
	now := e.now()

	w := window.Validate(in)
	mode := window.ClassifyMode(in, now)

	history, err := e.store.All(ctx)
	if err != nil {
		e.logger.Error("reading store unavailable", "error", err)
		res := noDataResult(w, mode)
		res.StoreError = true
		return res
	}

	filtered := window.Filter(history, w)
	sortByTimestamp(filtered)

	summary, ok := stats.Summarize(filtered)
	if !ok {
		res := noDataResult(w, mode)
		res.Alert = e.alert(ctx, mode)
		return res
	}

	res := Result{
		Records:         filtered,
		Temperature:     seriesOf(filtered, func(r reading.Reading) float64 { return r.Temperature }),
		Humidity:        seriesOf(filtered, func(r reading.Reading) float64 { return r.Humidity }),
		SoundVolume:     seriesOf(filtered, func(r reading.Reading) float64 { return r.SoundVolume }),
		Averages:        formatAverages(summary),
		MinMax:          formatMinMax(summary),
		Distribution:    distributionOf(summary),
		ValidationError: w.ErrorText(),
		BoundaryErrors:  w.Errors,
		Mode:            mode,
		Alert:           e.alert(ctx, mode),
		Summary:         &summary,
	}
	return res
}

// AlertState evaluates the alert alone, on its own refresh cadence. The
// alert always reflects the live tail of the unfiltered store; the
// boundary input only contributes the mode that gates it.
func (e *Engine) AlertState(ctx context.Context, in reading.BoundaryInput) stats.Alert {
	return e.alert(ctx, window.ClassifyMode(in, e.now()))
}

func (e *Engine) alert(ctx context.Context, mode window.Mode) stats.Alert {
	latest, found, err := e.store.Latest(ctx)
	if err != nil {
		e.logger.Error("failed to read latest reading", "error", err)
		found = false
	}
	return stats.EvaluateAlert(mode, latest, found)
}

// sortByTimestamp orders readings chronologically. The store offers no
// ordering guarantee, so charts and last-value consumers rely on this
// explicit sort. The sort is stable so equal timestamps keep their
// first-encountered order.
func sortByTimestamp(rs []reading.Reading) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Timestamp.Before(rs[j].Timestamp)
	})
}
