package introspect

import (
	"slices"
	"sync"
)

// Constant is one declared, immutable value of a type.
type Constant struct {
	Name  string
	Value any
}

// Const is shorthand for building descriptor tables.
func Const(name string, value any) Constant {
	return Constant{Name: name, Value: value}
}

// TypeDescriptor lists the constants a type declares, in declaration order.
type TypeDescriptor struct {
	Name      string
	Constants []Constant
}

// Registry holds the descriptor tables known to the process. Descriptors are
// expected to be registered at startup, before the first lookup.
type Registry struct {
	mu    sync.RWMutex
	types map[string]TypeDescriptor
}

// NewRegistry returns a registry seeded with descs.
func NewRegistry(descs ...TypeDescriptor) *Registry {
	r := &Registry{types: make(map[string]TypeDescriptor, len(descs))}
	for _, d := range descs {
		r.Register(d)
	}
	return r
}

// Register adds or replaces the descriptor stored under d.Name.
func (r *Registry) Register(d TypeDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.types == nil {
		r.types = make(map[string]TypeDescriptor)
	}
	d.Constants = slices.Clone(d.Constants)
	r.types[d.Name] = d
}

// Descriptor returns the descriptor registered under name.
func (r *Registry) Descriptor(name string) (TypeDescriptor, bool) {
	if r == nil {
		return TypeDescriptor{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.types[name]
	return d, ok
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
