package app

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/five82/mobileinfo/internal/probe"
	"github.com/five82/mobileinfo/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// Collector produces snapshots.
type Collector interface {
	Collect(ctx context.Context) (probe.Snapshot, error)
}

// Poller refreshes a store from a collector on a fixed cadence, backing off
// while collection keeps failing.
type Poller struct {
	store     *state.Store
	collector Collector
	log       *zap.Logger
	interval  atomic.Int64
}

// NewPoller returns a poller; a non-positive interval uses the default.
func NewPoller(store *state.Store, collector Collector, interval time.Duration, log *zap.Logger) *Poller {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Poller{store: store, collector: collector, log: log}
	p.SetInterval(interval)
	return p
}

// SetInterval changes the cadence from the next wait on.
func (p *Poller) SetInterval(d time.Duration) {
	if d <= 0 {
		d = defaultPollInterval
	}
	p.interval.Store(int64(d))
}

// Interval returns the current cadence.
func (p *Poller) Interval() time.Duration {
	return time.Duration(p.interval.Load())
}

// Start launches the polling goroutine and returns immediately. The first
// refresh happens after one interval; call Refresh for an immediate one.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		for {
			wait := calculateBackoff(p.store.Snapshot().ConsecutiveFailures, p.Interval())
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			p.Refresh(ctx)
		}
	}()
}

// Refresh collects one snapshot into the store.
func (p *Poller) Refresh(ctx context.Context) error {
	snap, err := p.collector.Collect(ctx)
	if err != nil {
		p.store.Update(nil, err)
		p.log.Warn("snapshot collection failed",
			zap.Error(err),
			zap.Int("consecutive_failures", p.store.Snapshot().ConsecutiveFailures))
		return err
	}
	for name, msg := range snap.Errors {
		p.log.Info("probe reported an error", zap.String("probe", name), zap.String("error", msg))
	}
	p.store.Update(&snap, nil)
	p.log.Debug("snapshot collected",
		zap.Int("batteries", len(snap.Batteries)),
		zap.Int("interfaces", len(snap.Network.Interfaces)),
		zap.Int("sensors", len(snap.Sensors)))
	return nil
}

// calculateBackoff doubles base per consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
