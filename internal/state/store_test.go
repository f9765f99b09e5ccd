package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/mobileinfo/internal/probe"
)

func sampleData() *probe.Snapshot {
	return &probe.Snapshot{
		Batteries: []probe.Battery{{Name: "BAT0", Level: 80}},
		Sensors:   []probe.Sensor{{Name: "als", Values: []float64{420}}},
		Network: probe.Network{Interfaces: []probe.Interface{
			{Name: "eth0", Addrs: []string{"10.0.0.2/24"}},
		}},
		System: probe.System{Environment: map[string]string{"HOME": "/home/u"}},
	}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(sampleData(), nil)

	snap := s.Snapshot()
	if !snap.HasData || snap.Data.Batteries[0].Level != 80 {
		t.Fatalf("snapshot data = %#v, want level=80 HasData=true", snap.Data.Batteries)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Data.Batteries[0].Level = 1
	snap.Data.Sensors[0].Values[0] = 1
	snap.Data.Network.Interfaces[0].Addrs[0] = "x"
	snap.Data.System.Environment["HOME"] = "/tmp"

	snap2 := s.Snapshot()
	if snap2.Data.Batteries[0].Level != 80 {
		t.Fatalf("Snapshot should clone batteries; got level %d", snap2.Data.Batteries[0].Level)
	}
	if snap2.Data.Sensors[0].Values[0] != 420 {
		t.Fatalf("Snapshot should clone sensor values")
	}
	if snap2.Data.Network.Interfaces[0].Addrs[0] != "10.0.0.2/24" {
		t.Fatalf("Snapshot should clone interface addresses")
	}
	if snap2.Data.System.Environment["HOME"] != "/home/u" {
		t.Fatalf("Snapshot should clone the environment")
	}
}

func TestStore_UpdateCopiesInput(t *testing.T) {
	var s Store
	data := sampleData()
	s.Update(data, nil)
	data.Batteries[0].Level = 5
	if got := s.Snapshot().Data.Batteries[0].Level; got != 80 {
		t.Fatalf("Update should copy its input; got level %d", got)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(sampleData(), nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if snap.HasData != prev.HasData || !reflect.DeepEqual(snap.Data, prev.Data) {
		t.Fatalf("data changed on error: got %#v want %#v", snap.Data, prev.Data)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsStale() {
		t.Fatalf("fresh store: failures=%d stale=%v", snap.ConsecutiveFailures, snap.IsStale())
	}

	for i := 1; i <= 3; i++ {
		s.Update(nil, errors.New("fail"))
		snap = s.Snapshot()
		if snap.ConsecutiveFailures != i {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i)
		}
		if want := i >= 2; snap.IsStale() != want {
			t.Fatalf("IsStale() = %v with %d failures, want %v", snap.IsStale(), i, want)
		}
	}

	s.Update(sampleData(), nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsStale() {
		t.Fatalf("success should reset: failures=%d stale=%v", snap.ConsecutiveFailures, snap.IsStale())
	}
}
