package introspect

import (
	"math"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// symbolKey identifies one constant extraction.
type symbolKey struct {
	typeName  string
	valueType reflect.Type
	pattern   string
}

func (k symbolKey) String() string {
	vt := "*"
	if k.valueType != nil {
		vt = k.valueType.PkgPath() + "." + k.valueType.String()
	}
	return k.typeName + "|" + vt + "|" + k.pattern
}

// symbolSet is the cached result for one key: declaration order plus the
// name-sorted map.
type symbolSet struct {
	declared []Attribute
	byName   AttributeMap
}

// SymbolTable caches constant extractions for the lifetime of the process.
// Each key is computed once; results are immutable.
type SymbolTable struct {
	registry *Registry
	log      *zap.Logger

	mu    sync.RWMutex
	cache map[symbolKey]symbolSet
	group singleflight.Group
}

// NewSymbolTable returns a table backed by registry.
func NewSymbolTable(registry *Registry, log *zap.Logger) *SymbolTable {
	if log == nil {
		log = zap.NewNop()
	}
	return &SymbolTable{
		registry: registry,
		log:      log,
		cache:    make(map[symbolKey]symbolSet),
	}
}

// Constants returns the constants of typeName whose value has valueType (nil
// accepts any) and whose name matches pattern, keyed by display name.
func (s *SymbolTable) Constants(typeName string, valueType reflect.Type, pattern string) AttributeMap {
	return s.lookup(symbolKey{typeName: typeName, valueType: valueType, pattern: pattern}).byName
}

// Name returns the display name of the first declared constant equal to
// value, or "" when none matches. A name shadowed by a later constant with
// the same display name is skipped, so Constants(typeName, typeof(value),
// pattern) always maps the returned name back to value.
func (s *SymbolTable) Name(typeName string, value any, pattern string) string {
	set := s.lookup(symbolKey{typeName: typeName, valueType: reflect.TypeOf(value), pattern: pattern})
	for _, a := range set.declared {
		if valuesEqual(a.Value, value) && valuesEqual(set.byName.Get(a.Name), value) {
			return a.Name
		}
	}
	return ""
}

// Flags returns the sorted names of the non-zero integer constants whose bits
// are all set in value.
func (s *SymbolTable) Flags(typeName string, value any, pattern string) []string {
	bits, ok := toUint64(value)
	if !ok {
		return nil
	}
	set := s.lookup(symbolKey{typeName: typeName, valueType: reflect.TypeOf(value), pattern: pattern})
	var names []string
	for i := 0; i < set.byName.Len(); i++ {
		name, v := set.byName.Entry(i)
		c, ok := toUint64(v)
		if !ok || c == 0 {
			continue
		}
		if bits&c == c {
			names = append(names, name)
		}
	}
	return names
}

// Nearest returns the name of the numeric constant closest to |value|. Ties go
// to the first name in sorted order.
func (s *SymbolTable) Nearest(typeName string, value float64, pattern string) string {
	set := s.lookup(symbolKey{typeName: typeName, pattern: pattern})
	target := math.Abs(value)
	best := ""
	minDelta := math.Inf(1)
	for i := 0; i < set.byName.Len(); i++ {
		name, v := set.byName.Entry(i)
		f, ok := toFloat64(v)
		if !ok {
			continue
		}
		if delta := math.Abs(f - target); delta < minDelta {
			minDelta = delta
			best = name
		}
	}
	return best
}

// Reset drops every cached extraction.
func (s *SymbolTable) Reset() {
	s.mu.Lock()
	s.cache = make(map[symbolKey]symbolSet)
	s.mu.Unlock()
}

func (s *SymbolTable) lookup(key symbolKey) symbolSet {
	s.mu.RLock()
	set, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return set
	}

	v, _, _ := s.group.Do(key.String(), func() (any, error) {
		s.mu.RLock()
		cached, ok := s.cache[key]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}
		built := s.build(key)
		s.mu.Lock()
		s.cache[key] = built
		s.mu.Unlock()
		return built, nil
	})
	return v.(symbolSet)
}

func (s *SymbolTable) build(key symbolKey) symbolSet {
	desc, ok := s.registry.Descriptor(key.typeName)
	if !ok {
		s.log.Debug("no descriptor registered", zap.String("type", key.typeName))
		return symbolSet{}
	}
	re, err := compilePattern(key.pattern)
	if err != nil {
		s.log.Warn("invalid name pattern",
			zap.String("type", key.typeName),
			zap.String("pattern", key.pattern),
			zap.Error(err))
		return symbolSet{}
	}

	var declared []Attribute
	var b builder
	for _, c := range desc.Constants {
		if key.valueType != nil && reflect.TypeOf(c.Value) != key.valueType {
			continue
		}
		name, ok := displayName(re, c.Name)
		if !ok {
			continue
		}
		declared = append(declared, Attribute{Name: name, Value: c.Value, Source: ConstantField})
		b.set(name, c.Value, ConstantField)
	}
	return symbolSet{declared: declared, byName: b.build()}
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func toUint64(v any) (uint64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	default:
		return 0, false
	}
}
