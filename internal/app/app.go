package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/five82/mobileinfo/internal/config"
	"github.com/five82/mobileinfo/internal/introspect"
	"github.com/five82/mobileinfo/internal/logging"
	"github.com/five82/mobileinfo/internal/prefs"
	"github.com/five82/mobileinfo/internal/probe"
	"github.com/five82/mobileinfo/internal/screens"
	"github.com/five82/mobileinfo/internal/state"
	"github.com/five82/mobileinfo/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses ~/.config/mobileinfo/prefs.toml
	PollEvery  time.Duration // zero uses the configured interval
	LogLevel   string        // overrides the configured level
}

// Environment holds the long-lived components shared by the TUI and dump.
type Environment struct {
	Config    config.Config
	Log       *zap.Logger
	Collector *probe.Collector
	Builder   *screens.Builder
	logging   bool
}

// Setup loads the configuration and builds the logger, collector and screen
// builder.
func Setup(opts Options) (*Environment, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	level := logging.ResolveLevel(cfg.LogLevel)
	log, err := logging.New(level, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	env := NewEnvironment(cfg, log, probe.Options{})
	env.logging = level != ""
	return env, nil
}

// NewEnvironment wires the components for cfg. probeOpts locate the data
// sources; nil FontDirs use the defaults plus the configured directories.
func NewEnvironment(cfg config.Config, log *zap.Logger, probeOpts probe.Options) *Environment {
	if log == nil {
		log = zap.NewNop()
	}
	if probeOpts.FontDirs == nil {
		probeOpts.FontDirs = fontDirs(cfg)
	}
	symbols := introspect.NewSymbolTable(probe.NewRegistry(), log)
	return &Environment{
		Config:    cfg,
		Log:       log,
		Collector: probe.NewCollector(probeOpts, log),
		Builder:   screens.NewBuilder(introspect.New(symbols, log), log),
	}
}

// LogPath returns the log file shown on the Logs screen, or "" when logging
// is off.
func (e *Environment) LogPath() string {
	if !e.logging {
		return ""
	}
	return e.Config.LogFile
}

// Close flushes the logger.
func (e *Environment) Close() {
	_ = e.Log.Sync()
}

// Screens returns the screens that are not hidden by the configuration.
func (e *Environment) Screens() []screens.ID {
	out := make([]screens.ID, 0, len(screens.All))
	for _, id := range screens.All {
		if !e.Config.Hidden(string(id)) {
			out = append(out, id)
		}
	}
	return out
}

// Run boots the TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	store := &state.Store{}
	poller := NewPoller(store, env.Collector, env.Config.PollInterval, env.Log)

	// The first collection queries the terminal background colour, which
	// must happen before the TUI owns stdin.
	_ = poller.Refresh(ctx)
	poller.Start(ctx)

	updates := make(chan config.Config, 1)
	watcher, err := config.NewWatcher(opts.ConfigPath, 0, func(cfg config.Config) {
		if opts.PollEvery > 0 {
			cfg.PollInterval = opts.PollEvery
		}
		poller.SetInterval(cfg.PollInterval)
		env.Collector.SetFontDirs(fontDirs(cfg))
		env.Log.Info("configuration reloaded", zap.Duration("poll_interval", cfg.PollInterval))
		// Keep only the newest configuration for the UI.
		select {
		case <-updates:
		default:
		}
		updates <- cfg
	}, func(err error) {
		env.Log.Warn("config watch error", zap.Error(err))
	})
	if err != nil {
		env.Log.Info("config reload disabled", zap.Error(err))
	} else {
		watcher.Start()
		defer watcher.Stop()
	}

	env.Log.Info("starting", zap.Duration("poll_interval", env.Config.PollInterval))
	return ui.Run(ui.Options{
		Context:       ctx,
		Store:         store,
		Builder:       env.Builder,
		Config:        env.Config,
		ConfigUpdates: updates,
		Screens:       env.Screens(),
		LogPath:       env.LogPath(),
		ThemeName:     userPrefs.Theme,
		Screen:        userPrefs.Screen,
		PrefsPath:     opts.PrefsPath,
		Refresh:       poller.Refresh,
		Log:           env.Log,
	})
}

func fontDirs(cfg config.Config) []string {
	return append(slices.Clone(probe.DefaultFontDirs), cfg.FontDirs...)
}
