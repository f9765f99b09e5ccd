package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options locate the data sources. Zero values use the system defaults.
type Options struct {
	PowerSupplyPath string
	ProcNetDevPath  string
	HwmonPath       string
	IIOPath         string
	FontDirs        []string
	Permissions     []PermissionSpec

	// TerminalFd is inspected for size and colours; zero means stdout.
	TerminalFd int
	// Terminal overrides terminal detection when set.
	Terminal func() Terminal
	Getenv   func(string) string
	Environ  func() []string
}

// Snapshot is everything the screens display, gathered in one pass.
type Snapshot struct {
	Taken         time.Time
	Batteries     []Battery
	Terminal      Terminal
	Configuration Configuration
	System        System
	Network       Network
	Sensors       []Sensor
	Fonts         []Font
	Permissions   []Permission
	// Errors maps a probe name to the error it reported.
	Errors map[string]string
}

// Probe names used as keys of Snapshot.Errors.
const (
	ProbeBattery = "battery"
	ProbeNetwork = "network"
	ProbeSensors = "sensors"
)

// Collector runs every probe.
type Collector struct {
	opts        Options
	battery     *BatteryReader
	network     *NetworkReader
	sensors     *SensorReader
	fonts       *FontScanner
	permissions *PermissionChecker
	log         *zap.Logger

	darkOnce sync.Once
	dark     bool
}

// NewCollector builds a collector from opts.
func NewCollector(opts Options, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.FontDirs == nil {
		opts.FontDirs = DefaultFontDirs
	}
	if opts.Permissions == nil {
		opts.Permissions = DefaultPermissions
	}
	if opts.TerminalFd == 0 {
		opts.TerminalFd = int(os.Stdout.Fd())
	}
	return &Collector{
		opts:        opts,
		battery:     NewBatteryReader(opts.PowerSupplyPath),
		network:     NewNetworkReader(opts.ProcNetDevPath),
		sensors:     NewSensorReader(opts.HwmonPath, opts.IIOPath),
		fonts:       NewFontScanner(opts.FontDirs, log),
		permissions: NewPermissionChecker(opts.Permissions),
		log:         log,
	}
}

// SetFontDirs changes the font directories; the next Collect rescans them.
func (c *Collector) SetFontDirs(dirs []string) {
	c.fonts.Rescan(dirs)
}

// Collect runs the probes concurrently. A failing probe leaves its section
// empty and is recorded in Snapshot.Errors. The returned error is non-nil only
// when ctx ends or every hardware probe failed.
func (c *Collector) Collect(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{
		Taken:  time.Now(),
		Errors: make(map[string]string),
	}
	var mu sync.Mutex
	fail := func(name string, err error) {
		c.log.Debug("probe failed", zap.String("probe", name), zap.Error(err))
		mu.Lock()
		snap.Errors[name] = err.Error()
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		batteries, err := c.battery.Read()
		if err != nil {
			fail(ProbeBattery, err)
		}
		snap.Batteries = batteries
		return gctx.Err()
	})
	g.Go(func() error {
		network, err := c.network.Read()
		if err != nil {
			fail(ProbeNetwork, err)
		}
		snap.Network = network
		return gctx.Err()
	})
	g.Go(func() error {
		sensors, err := c.sensors.Read()
		if err != nil {
			fail(ProbeSensors, err)
		}
		snap.Sensors = sensors
		return gctx.Err()
	})
	g.Go(func() error {
		snap.Fonts = c.fonts.Fonts()
		return gctx.Err()
	})

	snap.Terminal = c.terminal()
	snap.Configuration = ReadConfiguration(snap.Terminal, c.opts.Getenv)
	snap.System = ReadSystem(c.opts.Environ)
	snap.Permissions = c.permissions.Check()

	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("collect: %w", err)
	}
	if len(snap.Errors) == 3 {
		errs := make([]error, 0, len(snap.Errors))
		for _, name := range []string{ProbeBattery, ProbeNetwork, ProbeSensors} {
			errs = append(errs, fmt.Errorf("%s: %s", name, snap.Errors[name]))
		}
		return snap, fmt.Errorf("all probes failed: %w", errors.Join(errs...))
	}
	return snap, nil
}

func (c *Collector) terminal() Terminal {
	if c.opts.Terminal != nil {
		return c.opts.Terminal()
	}
	c.darkOnce.Do(func() {
		c.dark = DetectTerminal(c.opts.TerminalFd).Dark
	})
	t := terminalSize(c.opts.TerminalFd)
	t.Dark = c.dark
	return t
}
