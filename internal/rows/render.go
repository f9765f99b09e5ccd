package rows

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DefaultKeyWidth is the key column width used when none is configured.
const DefaultKeyWidth = 24

// Palette holds the styles applied to each part of a row.
type Palette struct {
	Header   lipgloss.Style
	Key      lipgloss.Style
	Value    lipgloss.Style
	Link     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
}

// PlainPalette renders without any styling.
func PlainPalette() Palette {
	plain := lipgloss.NewStyle()
	return Palette{Header: plain, Key: plain, Value: plain, Link: plain, Muted: plain, Selected: plain}
}

// Renderer turns rows into text blocks. Each row is rendered independently so
// a changed row never affects the layout of its siblings.
type Renderer struct {
	Palette  Palette
	KeyWidth int
	// Width limits horizontal grids; zero means unlimited.
	Width int
}

// NewRenderer returns a renderer using p and a key column of keyWidth cells.
func NewRenderer(p Palette, keyWidth int) *Renderer {
	if keyWidth <= 0 {
		keyWidth = DefaultKeyWidth
	}
	return &Renderer{Palette: p, KeyWidth: keyWidth}
}

// Render returns the block for r. Blocks may span several lines.
func (r *Renderer) Render(row Row) string {
	switch row := row.(type) {
	case Header:
		return r.header(row)
	case KeyValue:
		return r.keyValue(row)
	case Grid:
		return r.grid(row)
	default:
		return ""
	}
}

func (r *Renderer) header(h Header) string {
	out := r.Palette.Header.Render(h.Text)
	if h.Link != "" {
		out += "  " + r.Palette.Muted.Render(h.Link)
	}
	return out
}

func (r *Renderer) keyValue(kv KeyValue) string {
	keyStyle := r.Palette.Key
	if kv.KeyLink != "" {
		keyStyle = r.Palette.Link
	}
	valueStyle := r.Palette.Value
	if kv.ValueLink != "" {
		valueStyle = r.Palette.Link
	}

	key := fit(kv.Key, r.KeyWidth)
	indent := strings.Repeat(" ", r.KeyWidth+2)
	lines := strings.Split(kv.Value, "\n")
	var sb strings.Builder
	for i, line := range lines {
		if i == 0 {
			sb.WriteString(keyStyle.Render(key))
			sb.WriteString("  ")
		} else {
			sb.WriteString("\n")
			sb.WriteString(indent)
		}
		sb.WriteString(valueStyle.Render(line))
	}
	return sb.String()
}

func (r *Renderer) grid(g Grid) string {
	if len(g.Pairs) == 0 {
		return ""
	}
	if g.Vertical {
		lines := make([]string, len(g.Pairs))
		for i, p := range g.Pairs {
			lines[i] = r.keyValue(KeyValue{Key: p.Key, Value: p.Value})
		}
		return strings.Join(lines, "\n")
	}

	cells := make([]string, len(g.Pairs))
	cellWidth := 0
	for i, p := range g.Pairs {
		cells[i] = p.Key + ": " + p.Value
		cellWidth = max(cellWidth, runewidth.StringWidth(cells[i]))
	}
	perLine := len(cells)
	if r.Width > 0 {
		perLine = max(1, (r.Width+2)/(cellWidth+2))
	}

	var sb strings.Builder
	for i, p := range g.Pairs {
		switch {
		case i == 0:
		case i%perLine == 0:
			sb.WriteString("\n")
		default:
			sb.WriteString("  ")
		}
		pad := cellWidth - runewidth.StringWidth(cells[i])
		last := i == len(cells)-1 || (i+1)%perLine == 0
		sb.WriteString(r.Palette.Key.Render(p.Key + ":"))
		sb.WriteString(" ")
		sb.WriteString(r.Palette.Value.Render(p.Value))
		if !last {
			sb.WriteString(strings.Repeat(" ", pad))
		}
	}
	return sb.String()
}

// fit pads or truncates s to exactly width terminal cells.
func fit(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
