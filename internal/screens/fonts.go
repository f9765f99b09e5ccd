package screens

import (
	"sort"
	"strconv"
	"strings"

	"github.com/five82/mobileinfo/internal/probe"
	"github.com/five82/mobileinfo/internal/rows"
)

// Fonts lists installed font families with their styles.
func (b *Builder) Fonts(s probe.Snapshot) []rows.Row {
	families := probe.FontFamilies(s.Fonts)
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)

	out := []rows.Row{rows.Header{ID: "fonts", Text: "Fonts (" + strconv.Itoa(len(names)) + " families)"}}
	for _, name := range names {
		key := name
		if key == "" {
			key = "(unnamed)"
		}
		styles := families[name]
		out = append(out, rows.KeyValue{ID: "font/" + name, Key: key, Value: strings.Join(styles, ", ")})
	}
	return out
}
