package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/mobileinfo/internal/probe"
	"github.com/five82/mobileinfo/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 100; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeCollector struct {
	calls atomic.Int32
	err   error
}

func (f *fakeCollector) Collect(ctx context.Context) (probe.Snapshot, error) {
	n := f.calls.Add(1)
	if f.err != nil {
		return probe.Snapshot{}, f.err
	}
	return probe.Snapshot{Batteries: []probe.Battery{{Name: "BAT0", Level: int(n)}}}, nil
}

func TestPoller_RefreshUpdatesStore(t *testing.T) {
	store := &state.Store{}
	p := NewPoller(store, &fakeCollector{}, 0, nil)
	if p.Interval() != defaultPollInterval {
		t.Fatalf("Interval = %v, want default", p.Interval())
	}

	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	snap := store.Snapshot()
	if !snap.HasData || snap.Data.Batteries[0].Level != 1 {
		t.Fatalf("store not updated: %+v", snap)
	}
}

func TestPoller_RefreshRecordsFailures(t *testing.T) {
	store := &state.Store{}
	p := NewPoller(store, &fakeCollector{err: errors.New("all probes failed")}, time.Second, nil)

	for i := 0; i < 2; i++ {
		if err := p.Refresh(context.Background()); err == nil {
			t.Fatalf("Refresh should fail")
		}
	}
	if snap := store.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsStale() {
		t.Fatalf("failures = %d", snap.ConsecutiveFailures)
	}
}

func TestPoller_StartPollsUntilCancelled(t *testing.T) {
	store := &state.Store{}
	collector := &fakeCollector{}
	p := NewPoller(store, collector, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	deadline := time.Now().Add(5 * time.Second)
	for collector.calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("poller made %d calls, want at least 3", collector.calls.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	// Allow an in-flight refresh to finish, then make sure polling stopped.
	time.Sleep(50 * time.Millisecond)
	settled := collector.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if got := collector.calls.Load(); got != settled {
		t.Fatalf("poller kept running after cancel: %d -> %d", settled, got)
	}
}

func TestPoller_SetInterval(t *testing.T) {
	p := NewPoller(&state.Store{}, &fakeCollector{}, time.Second, nil)
	p.SetInterval(5 * time.Second)
	if p.Interval() != 5*time.Second {
		t.Fatalf("Interval = %v", p.Interval())
	}
	p.SetInterval(-1)
	if p.Interval() != defaultPollInterval {
		t.Fatalf("Interval = %v, want default", p.Interval())
	}
}
