// Mobileinfo shows what a device reports about itself: battery, display
// configuration, network, sensors, fonts and its own log, in a terminal UI.
//
// Run without arguments for the interactive view, or use 'mobileinfo dump'
// to print every screen once.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/mobileinfo/internal/app"
	"github.com/five82/mobileinfo/internal/version"
)

var (
	configPath string
	prefsPath  string
	pollEvery  time.Duration
	logLevel   string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mobileinfo: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mobileinfo",
	Short: "Device information browser",
	Long: `Mobileinfo reads battery, display configuration, network, sensor and font
information from the system and shows it as live, auto-refreshing screens.

Settings are read from ~/.config/mobileinfo/config.toml and reloaded when the
file changes.`,
	Version:       version.Full(),
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), appOptions())
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/mobileinfo/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config and MOBILEINFO_LOG_LEVEL)")
	rootCmd.Flags().StringVar(&prefsPath, "prefs", "", "Preferences file (default ~/.config/mobileinfo/prefs.toml)")
	rootCmd.Flags().DurationVar(&pollEvery, "poll", 0, "Refresh interval, e.g. 500ms or 5s (overrides config)")

	rootCmd.AddCommand(dumpCmd, versionCmd)
}

func appOptions() app.Options {
	return app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		PollEvery:  pollEvery,
		LogLevel:   logLevel,
	}
}
