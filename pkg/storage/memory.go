package storage

import (
	"context"
	"sync"

	"github.com/envsentry/envsentry/pkg/reading"
)

// MemoryStore implements an in-memory reading store. It is safe for
// concurrent use by multiple goroutines.
//
// Readings are held in a single append-only slice. The store is intended
// for tests and single-process demo deployments; for anything that must
// survive a restart use SQLiteStore or RedisStore instead.
type MemoryStore struct {
	mu       sync.RWMutex
	readings []reading.Reading
}

// NewMemoryStore creates an empty in-memory reading store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append stores one reading. This operation is safe for concurrent use.
func (s *MemoryStore) Append(ctx context.Context, r reading.Reading) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings = append(s.readings, r)
	return nil
}

// All returns a copy of every stored reading in append order.
func (s *MemoryStore) All(ctx context.Context) ([]reading.Reading, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]reading.Reading, len(s.readings))
	copy(out, s.readings)
	return out, nil
}

// Latest returns the most recently appended reading.
func (s *MemoryStore) Latest(ctx context.Context) (reading.Reading, bool, error) {
	select {
	case <-ctx.Done():
		return reading.Reading{}, false, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.readings) == 0 {
		return reading.Reading{}, false, nil
	}
	return s.readings[len(s.readings)-1], true, nil
}

// Len returns the number of stored readings. Primarily useful for tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}
