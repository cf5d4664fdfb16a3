package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "readings.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return store
}

func TestSQLiteStore_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStore(""); err == nil {
		t.Fatal("NewSQLiteStore(\"\") must fail")
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 15, 12, 0, 0, 123456000, time.UTC)
	r0 := sampleReading(20.0, 0, base)
	r1 := sampleReading(25.0, 1, base.Add(time.Minute))

	if err := store.Append(ctx, r0); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, r1); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("All() returned %d readings, want 2", len(all))
	}

	got := all[0]
	if got.ID != r0.ID {
		t.Errorf("ID = %v, want %v", got.ID, r0.ID)
	}
	if got.Temperature != r0.Temperature || got.Humidity != r0.Humidity || got.SoundVolume != r0.SoundVolume {
		t.Errorf("values = %+v, want %+v", got, r0)
	}
	if got.Prediction != r0.Prediction {
		t.Errorf("prediction = %d, want %d", got.Prediction, r0.Prediction)
	}
	if !got.Timestamp.Equal(r0.Timestamp) {
		t.Errorf("timestamp = %v, want %v (nanosecond precision must survive)", got.Timestamp, r0.Timestamp)
	}
}

func TestSQLiteStore_Latest(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if _, found, err := store.Latest(ctx); err != nil || found {
		t.Fatalf("Latest() on empty store = found=%v, err=%v, want found=false, err=nil", found, err)
	}

	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	older := sampleReading(20.0, 0, base.Add(time.Minute))
	newer := sampleReading(25.0, 1, base.Add(2*time.Minute))

	// Insert out of timestamp order: Latest must go by timestamp, not rowid.
	if err := store.Append(ctx, newer); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, older); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	latest, found, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if !found {
		t.Fatal("Latest() found = false, want true")
	}
	if latest.ID != newer.ID {
		t.Errorf("Latest() = %+v, want the reading with the greatest timestamp", latest)
	}
}

func TestSQLiteStore_Latest_SubsecondOrdering(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	// A whole-second timestamp and a fractional one inside the same
	// second: the stored encoding must keep lexical order chronological.
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	whole := sampleReading(20.0, 0, base)
	fractional := sampleReading(25.0, 1, base.Add(500*time.Millisecond))

	if err := store.Append(ctx, whole); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, fractional); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	latest, found, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if !found {
		t.Fatal("Latest() found = false, want true")
	}
	if latest.ID != fractional.ID {
		t.Errorf("Latest() = %+v, want the fractional-second reading", latest)
	}
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	r := sampleReading(20.0, 0, time.Now())
	if err := store.Append(ctx, r); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, r); err == nil {
		t.Error("Append() with duplicate id must fail")
	}
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readings.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	r := sampleReading(20.0, 0, time.Now().UTC())
	if err := store.Append(ctx, r); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() after reopen error = %v", err)
	}
	defer reopened.Close()

	all, err := reopened.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 1 || all[0].ID != r.ID {
		t.Errorf("reopened store returned %+v, want the persisted reading", all)
	}
}
