package state

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/five82/mobileinfo/internal/probe"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Data                probe.Snapshot
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed collections
}

// IsStale reports whether collection has failed several times in a row.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(data *probe.Snapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if data != nil {
		s.snapshot.Data = cloneData(*data)
		s.snapshot.HasData = true
	} else {
		s.snapshot.HasData = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Data = cloneData(s.snapshot.Data)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// cloneData copies the slices and maps of d. Elements holding further slices
// (interface addresses, sensor values) are copied one level down too.
func cloneData(d probe.Snapshot) probe.Snapshot {
	d.Batteries = slices.Clone(d.Batteries)
	d.Fonts = slices.Clone(d.Fonts)
	d.Permissions = slices.Clone(d.Permissions)
	d.Errors = maps.Clone(d.Errors)
	d.System.Build = slices.Clone(d.System.Build)
	d.System.Environment = maps.Clone(d.System.Environment)

	d.Sensors = slices.Clone(d.Sensors)
	for i := range d.Sensors {
		d.Sensors[i].Values = slices.Clone(d.Sensors[i].Values)
	}
	d.Network.Interfaces = slices.Clone(d.Network.Interfaces)
	for i := range d.Network.Interfaces {
		d.Network.Interfaces[i].Addrs = slices.Clone(d.Network.Interfaces[i].Addrs)
	}
	return d
}
