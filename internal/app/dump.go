package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/five82/mobileinfo/internal/logtail"
	"github.com/five82/mobileinfo/internal/rows"
	"github.com/five82/mobileinfo/internal/screens"
)

// Dump output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// DumpOptions control Dump.
type DumpOptions struct {
	Format  string
	Width   int          // wrap width for grids; zero disables wrapping
	Screens []screens.ID // empty dumps every visible screen
}

type dumpScreen struct {
	Screen string    `yaml:"screen"`
	Rows   []dumpRow `yaml:"rows"`
}

type dumpRow struct {
	ID     string      `yaml:"id"`
	Header string      `yaml:"header,omitempty"`
	Key    string      `yaml:"key,omitempty"`
	Value  string      `yaml:"value,omitempty"`
	Link   string      `yaml:"link,omitempty"`
	Pairs  []rows.Pair `yaml:"pairs,omitempty"`
}

// Dump collects one snapshot and writes every requested screen to w.
func Dump(ctx context.Context, w io.Writer, env *Environment, opts DumpOptions) error {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = FormatText
	}
	if format != FormatText && format != FormatYAML {
		return fmt.Errorf("unknown format %q (want %s or %s)", opts.Format, FormatText, FormatYAML)
	}

	snap, err := env.Collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect snapshot: %w", err)
	}
	input := screens.Input{Snapshot: snap, LogPath: env.LogPath()}
	if input.LogPath != "" {
		lines, err := logtail.Read(input.LogPath, env.Config.LogLines)
		if err != nil {
			env.Log.Warn("read log for dump", zap.Error(err))
		}
		input.LogLines = lines
	}

	ids := opts.Screens
	if len(ids) == 0 {
		ids = env.Screens()
	}

	if format == FormatYAML {
		out := make([]dumpScreen, 0, len(ids))
		for _, id := range ids {
			out = append(out, dumpScreen{Screen: string(id), Rows: toDumpRows(env.Builder.Build(id, input))})
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	renderer := rows.NewRenderer(rows.PlainPalette(), env.Config.KeyWidth)
	renderer.Width = opts.Width
	for i, id := range ids {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		var b strings.Builder
		b.WriteString("== " + id.Title() + " ==\n")
		for _, r := range env.Builder.Build(id, input) {
			b.WriteString(renderer.Render(r))
			b.WriteString("\n")
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("write %s: %w", id, err)
		}
	}
	return nil
}

func toDumpRows(rs []rows.Row) []dumpRow {
	out := make([]dumpRow, 0, len(rs))
	for _, r := range rs {
		d := dumpRow{ID: r.RowID()}
		switch r := r.(type) {
		case rows.Header:
			d.Header, d.Link = r.Text, r.Link
		case rows.KeyValue:
			d.Key, d.Value = r.Key, r.Value
			d.Link = r.ValueLink
			if d.Link == "" {
				d.Link = r.KeyLink
			}
		case rows.Grid:
			d.Pairs = r.Pairs
		}
		out = append(out, d)
	}
	return out
}
