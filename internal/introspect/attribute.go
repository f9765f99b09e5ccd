package introspect

import (
	"reflect"
	"slices"
	"strings"
)

// SourceKind records how an attribute was discovered.
type SourceKind int

const (
	ConstantField SourceKind = iota
	Accessor
	InstanceField
)

func (k SourceKind) String() string {
	switch k {
	case ConstantField:
		return "constant"
	case Accessor:
		return "accessor"
	case InstanceField:
		return "field"
	default:
		return "unknown"
	}
}

// Attribute is one named value produced by an extraction pass.
type Attribute struct {
	Name   string
	Value  any
	Source SourceKind
}

// AttributeMap is an immutable name→attribute mapping kept sorted by name.
// The zero value is an empty map. Mutating helpers return a new map.
type AttributeMap struct {
	attrs []Attribute
}

// NewAttributeMap builds a map from attrs. Later duplicates replace earlier ones.
func NewAttributeMap(attrs ...Attribute) AttributeMap {
	var b builder
	for _, a := range attrs {
		b.set(a.Name, a.Value, a.Source)
	}
	return b.build()
}

// FromValues builds a map of instance-field attributes from a plain Go map.
func FromValues[V any](values map[string]V) AttributeMap {
	var b builder
	for name, v := range values {
		b.set(name, v, InstanceField)
	}
	return b.build()
}

// Len returns the number of attributes.
func (m AttributeMap) Len() int { return len(m.attrs) }

// Entry returns the name and value at position i in name order.
func (m AttributeMap) Entry(i int) (string, any) {
	a := m.attrs[i]
	return a.Name, a.Value
}

// Lookup returns the attribute stored under name.
func (m AttributeMap) Lookup(name string) (Attribute, bool) {
	i, ok := m.search(name)
	if !ok {
		return Attribute{}, false
	}
	return m.attrs[i], true
}

// Get returns the value stored under name, or nil.
func (m AttributeMap) Get(name string) any {
	a, _ := m.Lookup(name)
	return a.Value
}

// Has reports whether name is present.
func (m AttributeMap) Has(name string) bool {
	_, ok := m.search(name)
	return ok
}

// Names returns attribute names in order.
func (m AttributeMap) Names() []string {
	names := make([]string, len(m.attrs))
	for i, a := range m.attrs {
		names[i] = a.Name
	}
	return names
}

// Attributes returns a copy of the attributes in order.
func (m AttributeMap) Attributes() []Attribute {
	return slices.Clone(m.attrs)
}

// With returns a copy of m with name set to value. An existing attribute keeps
// its source kind.
func (m AttributeMap) With(name string, value any) AttributeMap {
	i, ok := m.search(name)
	out := make([]Attribute, 0, len(m.attrs)+1)
	out = append(out, m.attrs[:i]...)
	if ok {
		out = append(out, Attribute{Name: name, Value: value, Source: m.attrs[i].Source})
		out = append(out, m.attrs[i+1:]...)
	} else {
		out = append(out, Attribute{Name: name, Value: value, Source: InstanceField})
		out = append(out, m.attrs[i:]...)
	}
	return AttributeMap{attrs: out}
}

// Without returns a copy of m with name removed.
func (m AttributeMap) Without(name string) AttributeMap {
	i, ok := m.search(name)
	if !ok {
		return m
	}
	out := make([]Attribute, 0, len(m.attrs)-1)
	out = append(out, m.attrs[:i]...)
	out = append(out, m.attrs[i+1:]...)
	return AttributeMap{attrs: out}
}

// Merge returns the union of m and other; other wins on name collisions.
func (m AttributeMap) Merge(other AttributeMap) AttributeMap {
	var b builder
	for _, a := range m.attrs {
		b.set(a.Name, a.Value, a.Source)
	}
	for _, a := range other.attrs {
		b.set(a.Name, a.Value, a.Source)
	}
	return b.build()
}

// Equal reports whether both maps hold the same names and deeply equal values.
func (m AttributeMap) Equal(other AttributeMap) bool {
	if len(m.attrs) != len(other.attrs) {
		return false
	}
	for i, a := range m.attrs {
		b := other.attrs[i]
		if a.Name != b.Name || !reflect.DeepEqual(a.Value, b.Value) {
			return false
		}
	}
	return true
}

// Values returns the attributes as a plain map, useful for serialisation.
func (m AttributeMap) Values() map[string]any {
	out := make(map[string]any, len(m.attrs))
	for _, a := range m.attrs {
		out[a.Name] = a.Value
	}
	return out
}

func (m AttributeMap) search(name string) (int, bool) {
	return slices.BinarySearchFunc(m.attrs, name, func(a Attribute, target string) int {
		return strings.Compare(a.Name, target)
	})
}

// builder accumulates attributes for one extraction pass; last write wins.
type builder struct {
	attrs map[string]Attribute
}

func (b *builder) set(name string, value any, source SourceKind) {
	if b.attrs == nil {
		b.attrs = make(map[string]Attribute)
	}
	b.attrs[name] = Attribute{Name: name, Value: value, Source: source}
}

func (b *builder) build() AttributeMap {
	if len(b.attrs) == 0 {
		return AttributeMap{}
	}
	out := make([]Attribute, 0, len(b.attrs))
	for _, a := range b.attrs {
		out = append(out, a)
	}
	slices.SortFunc(out, func(x, y Attribute) int { return strings.Compare(x.Name, y.Name) })
	return AttributeMap{attrs: out}
}
