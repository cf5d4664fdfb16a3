package storage

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/envsentry/envsentry/pkg/reading"
)

func sampleReading(temp float64, prediction int, ts time.Time) reading.Reading {
	return reading.New(temp, 50.0, 30.0, prediction, ts)
}

func TestMemoryStore_AppendAndAll(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	r0 := sampleReading(20.0, 0, base)
	r1 := sampleReading(25.0, 1, base.Add(time.Minute))

	for _, r := range []reading.Reading{r0, r1} {
		if err := store.Append(ctx, r); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if !reflect.DeepEqual(all, []reading.Reading{r0, r1}) {
		t.Errorf("All() = %+v, want append order preserved", all)
	}
}

func TestMemoryStore_AllReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	r := sampleReading(20.0, 0, time.Now())
	if err := store.Append(ctx, r); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	all, _ := store.All(ctx)
	all[0].Temperature = 99.0

	again, _ := store.All(ctx)
	if again[0].Temperature != 20.0 {
		t.Error("mutating the returned slice must not affect the store")
	}
}

func TestMemoryStore_Latest(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, found, err := store.Latest(ctx); err != nil || found {
		t.Fatalf("Latest() on empty store = found=%v, err=%v, want found=false, err=nil", found, err)
	}

	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	r0 := sampleReading(20.0, 0, base)
	r1 := sampleReading(25.0, 1, base.Add(time.Minute))
	store.Append(ctx, r0)
	store.Append(ctx, r1)

	latest, found, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if !found {
		t.Fatal("Latest() found = false, want true")
	}
	if latest.ID != r1.ID {
		t.Errorf("Latest() = %+v, want the last appended reading", latest)
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Append(ctx, sampleReading(20.0, 0, time.Now())); err == nil {
		t.Error("Append() with cancelled context must fail")
	}
	if _, err := store.All(ctx); err == nil {
		t.Error("All() with cancelled context must fail")
	}
	if _, _, err := store.Latest(ctx); err == nil {
		t.Error("Latest() with cancelled context must fail")
	}
}

func TestMemoryStore_ConcurrentAppend(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				r := sampleReading(float64(i), 0, time.Now())
				if err := store.Append(ctx, r); err != nil {
					t.Errorf("Append() error = %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	if got := store.Len(); got != 200 {
		t.Errorf("Len() = %d, want 200", got)
	}
}
