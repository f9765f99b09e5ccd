package ui

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/five82/mobileinfo/internal/rows"
)

// rowSource adapts rows to fuzzy.Source.
type rowSource []rows.Row

func (s rowSource) String(i int) string { return rowText(s[i]) }
func (s rowSource) Len() int            { return len(s) }

// filterRows returns the indices of the rows matching query, in display
// order. A blank query matches nothing.
func filterRows(all []rows.Row, query string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	matches := fuzzy.FindFrom(query, rowSource(all))
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	slices.Sort(out)
	return out
}

// rowText is the searchable text of a row.
func rowText(r rows.Row) string {
	switch r := r.(type) {
	case rows.Header:
		return r.Text
	case rows.KeyValue:
		return r.Key + " " + r.Value
	case rows.Grid:
		parts := make([]string, 0, 2*len(r.Pairs))
		for _, p := range r.Pairs {
			parts = append(parts, p.Key, p.Value)
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// rowLink returns the first link a row carries.
func rowLink(r rows.Row) string {
	switch r := r.(type) {
	case rows.Header:
		return r.Link
	case rows.KeyValue:
		if r.KeyLink != "" {
			return r.KeyLink
		}
		return r.ValueLink
	default:
		return ""
	}
}
