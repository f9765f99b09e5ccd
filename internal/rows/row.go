package rows

import (
	"slices"
	"strings"
)

// Row is one renderable unit of a list. The set of implementations is closed:
// Header, KeyValue and Grid.
type Row interface {
	// RowID returns the row's identity within a list.
	RowID() string
	isRow()
}

// Header is a section title with an optional documentation link.
type Header struct {
	ID   string
	Text string
	Link string
}

// KeyValue is a labelled value. Either side may carry a link.
type KeyValue struct {
	ID        string
	Key       string
	KeyLink   string
	Value     string
	ValueLink string
}

// Pair is one cell of a Grid.
type Pair struct {
	Key   string
	Value string
}

// Grid lays out several pairs in one row, side by side or stacked when
// Vertical is set.
type Grid struct {
	ID       string
	Pairs    []Pair
	Vertical bool
}

func (Header) isRow()   {}
func (KeyValue) isRow() {}
func (Grid) isRow()     {}

// RowID returns ID, or "header:<text>" when ID is empty.
func (h Header) RowID() string {
	if h.ID != "" {
		return h.ID
	}
	return "header:" + h.Text
}

// RowID returns ID, or "kv:<key>" when ID is empty. The value is not part of
// the structural identity so a changed value updates the row in place.
func (kv KeyValue) RowID() string {
	if kv.ID != "" {
		return kv.ID
	}
	return "kv:" + kv.Key
}

// RowID returns ID, or "grid:" followed by the pair keys when ID is empty.
func (g Grid) RowID() string {
	if g.ID != "" {
		return g.ID
	}
	keys := make([]string, len(g.Pairs))
	for i, p := range g.Pairs {
		keys[i] = p.Key
	}
	return "grid:" + strings.Join(keys, ",")
}

// SameContent reports whether a and b would render identically.
func SameContent(a, b Row) bool {
	switch a := a.(type) {
	case Header:
		b, ok := b.(Header)
		return ok && a == b
	case KeyValue:
		b, ok := b.(KeyValue)
		return ok && a == b
	case Grid:
		b, ok := b.(Grid)
		return ok && a.ID == b.ID && a.Vertical == b.Vertical && slices.Equal(a.Pairs, b.Pairs)
	default:
		return false
	}
}
