// Package storage provides reading store implementations.
//
// The reading store is append-only: readings are never updated or deleted
// once written. Consumers read the full history on every query and do all
// filtering in-process, so no backend offers server-side filtering.
package storage

import (
	"context"

	"github.com/envsentry/envsentry/pkg/reading"
)

// Store is the append-only reading store shared by the predictor (writer)
// and the dashboard (reader).
type Store interface {
	// Append persists one reading.
	Append(ctx context.Context, r reading.Reading) error

	// All returns every stored reading. No ordering is guaranteed;
	// callers that need chronological order must sort by timestamp.
	All(ctx context.Context) ([]reading.Reading, error)

	// Latest returns the most recently stored reading, or found=false
	// when the store is empty.
	Latest(ctx context.Context) (reading.Reading, bool, error)
}
