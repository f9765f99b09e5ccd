package screens

import (
	"slices"

	"github.com/five82/mobileinfo/internal/format"
	"github.com/five82/mobileinfo/internal/introspect"
	"github.com/five82/mobileinfo/internal/probe"
	"github.com/five82/mobileinfo/internal/rows"
	"go.uber.org/zap"
)

// ID names a screen.
type ID string

const (
	Home    ID = "home"
	Network ID = "network"
	Sensors ID = "sensors"
	Fonts   ID = "fonts"
	Logs    ID = "logs"
)

// All lists every screen in tab order.
var All = []ID{Home, Network, Sensors, Fonts, Logs}

// Title returns the tab label.
func (id ID) Title() string {
	switch id {
	case Home:
		return "Home"
	case Network:
		return "Network"
	case Sensors:
		return "Sensors"
	case Fonts:
		return "Fonts"
	case Logs:
		return "Logs"
	default:
		return string(id)
	}
}

// Parse returns the screen named s.
func Parse(s string) (ID, bool) {
	for _, id := range All {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// Input is everything a screen may draw from.
type Input struct {
	Snapshot probe.Snapshot
	LogPath  string
	LogLines []string
}

// Builder turns snapshots into rows.
type Builder struct {
	in  *introspect.Introspector
	log *zap.Logger
}

// NewBuilder returns a builder resolving constant names through in.
func NewBuilder(in *introspect.Introspector, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{in: in, log: log}
}

// Build returns the rows of screen id. Unknown screens have no rows.
func (b *Builder) Build(id ID, input Input) []rows.Row {
	switch id {
	case Home:
		return b.Home(input.Snapshot)
	case Network:
		return b.Network(input.Snapshot)
	case Sensors:
		return b.Sensors(input.Snapshot)
	case Fonts:
		return b.Fonts(input.Snapshot)
	case Logs:
		return b.Logs(input.LogPath, input.LogLines)
	default:
		b.log.Debug("unknown screen", zap.String("screen", string(id)))
		return nil
	}
}

// display formats a value for a row; lists are comma separated.
func display(v any) string {
	return format.Format(v, format.WithSeparator(", "))
}

// attributeRows adds one KeyValue per entry of m with the identity
// prefix/<name>. Values of the symbolic names are constant names and are
// humanised.
func attributeRows(out []rows.Row, prefix string, m introspect.AttributeMap, symbolic ...string) []rows.Row {
	for i := 0; i < m.Len(); i++ {
		name, value := m.Entry(i)
		if slices.Contains(symbolic, name) {
			value = labelValue(value)
		}
		out = append(out, rows.KeyValue{ID: prefix + "/" + name, Key: fieldLabel(name), Value: display(value)})
	}
	return out
}

func labelValue(v any) any {
	switch v := v.(type) {
	case string:
		return constantLabel(v)
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			out[i] = constantLabel(s)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			if s, ok := e.(string); ok {
				out[i] = constantLabel(s)
			}
		}
		return out
	default:
		return v
	}
}

// errorRow reports a failed probe, or nothing when it succeeded.
func errorRow(out []rows.Row, s probe.Snapshot, name string) []rows.Row {
	msg, ok := s.Errors[name]
	if !ok {
		return out
	}
	return append(out, rows.KeyValue{ID: "error/" + name, Key: "Error", Value: msg})
}
