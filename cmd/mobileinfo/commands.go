package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/mobileinfo/internal/app"
	"github.com/five82/mobileinfo/internal/screens"
	"github.com/five82/mobileinfo/internal/version"
)

var (
	dumpFormat  string
	dumpScreens []string
	dumpWidth   int
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every screen once and exit",
	Long: `Collect one snapshot and print the screens as text or YAML.

Text output uses the same layout as the interactive view without colors.`,
	Example: `  # Everything, as text
  mobileinfo dump

  # Battery and configuration only, as YAML
  mobileinfo dump --screen home --format yaml`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", app.FormatText, "Output format (text, yaml)")
	dumpCmd.Flags().StringSliceVar(&dumpScreens, "screen", nil, "Screens to print: "+screenNames()+" (default all visible)")
	dumpCmd.Flags().IntVar(&dumpWidth, "width", 0, "Wrap width for grids (default terminal width)")
}

func runDump(cmd *cobra.Command, args []string) error {
	ids, err := parseScreens(dumpScreens)
	if err != nil {
		return err
	}

	env, err := app.Setup(app.Options{ConfigPath: configPath, LogLevel: logLevel})
	if err != nil {
		return err
	}
	defer env.Close()

	width := dumpWidth
	if width == 0 {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return app.Dump(cmd.Context(), cmd.OutOrStdout(), env, app.DumpOptions{
		Format:  dumpFormat,
		Width:   width,
		Screens: ids,
	})
}

func parseScreens(names []string) ([]screens.ID, error) {
	ids := make([]screens.ID, 0, len(names))
	for _, name := range names {
		id, ok := screens.Parse(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return nil, fmt.Errorf("unknown screen %q (want one of %s)", name, screenNames())
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func screenNames() string {
	names := make([]string, len(screens.All))
	for i, id := range screens.All {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mobileinfo %s\n", version.Full())
	},
}
