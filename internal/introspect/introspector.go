package introspect

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// excludedMethods are the formatting hooks every Go type may carry; they
// describe the value rather than expose a property of it.
var excludedMethods = map[string]bool{
	"String":   true,
	"GoString": true,
	"Error":    true,
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Introspector turns runtime values into AttributeMaps.
type Introspector struct {
	symbols *SymbolTable
	log     *zap.Logger
}

// New returns an Introspector that resolves constants through symbols.
func New(symbols *SymbolTable, log *zap.Logger) *Introspector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Introspector{symbols: symbols, log: log}
}

// Symbols returns the symbol table backing constant lookups.
func (in *Introspector) Symbols() *SymbolTable {
	return in.symbols
}

// ExtractConstants returns the constants declared by typeName, optionally
// filtered by value type and name pattern.
func (in *Introspector) ExtractConstants(typeName string, valueType reflect.Type, pattern string) AttributeMap {
	return in.symbols.Constants(typeName, valueType, pattern)
}

// FindConstantName returns the display name of the constant of typeName equal
// to value, or "".
func (in *Introspector) FindConstantName(typeName string, value any, pattern string) string {
	return in.symbols.Name(typeName, value, pattern)
}

// FlagNames returns the names of the bit constants set in value.
func (in *Introspector) FlagNames(typeName string, value any, pattern string) []string {
	return in.symbols.Flags(typeName, value, pattern)
}

// NearestConstant returns the name of the numeric constant closest to |value|.
func (in *Introspector) NearestConstant(typeName string, value float64, pattern string) string {
	return in.symbols.Nearest(typeName, value, pattern)
}

// ExtractProperties invokes every exported zero-argument method of obj whose
// name matches pattern and records the result. Methods may return a single
// value or a value and an error. A method that panics or returns an error is
// logged and left out. An empty pattern uses DefaultAccessorPattern.
func (in *Introspector) ExtractProperties(obj any, pattern string) AttributeMap {
	if pattern == "" {
		pattern = DefaultAccessorPattern
	}
	v := reflect.ValueOf(obj)
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return AttributeMap{}
	}
	re, err := compilePattern(pattern)
	if err != nil {
		in.log.Warn("invalid accessor pattern", zap.String("pattern", pattern), zap.Error(err))
		return AttributeMap{}
	}

	// Work on a pointer so methods with pointer receivers are visible too.
	if v.Kind() != reflect.Pointer {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		v = p
	}
	t := v.Type()

	var b builder
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if excludedMethods[m.Name] || !isAccessor(m.Type) {
			continue
		}
		name, ok := displayName(re, m.Name)
		if !ok {
			continue
		}
		value, err := invoke(v.Method(i))
		if err != nil {
			in.log.Warn("accessor failed",
				zap.String("type", t.Elem().String()),
				zap.String("method", m.Name),
				zap.Error(err))
			continue
		}
		b.set(name, value, Accessor)
	}
	return b.build()
}

// ExtractFields records every exported field of the struct obj points to,
// including fields promoted from embedded structs. Unexported fields are
// skipped.
func (in *Introspector) ExtractFields(obj any) AttributeMap {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return AttributeMap{}
		}
		v = v.Elem()
	}
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return AttributeMap{}
	}
	t := v.Type()

	var b builder
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous && derefType(f.Type).Kind() == reflect.Struct {
			continue
		}
		if !f.IsExported() {
			in.log.Debug("field not accessible", zap.String("type", t.String()), zap.String("field", f.Name))
			continue
		}
		fv, err := v.FieldByIndexErr(f.Index)
		if err != nil || !fv.CanInterface() {
			in.log.Debug("field not accessible", zap.String("type", t.String()), zap.String("field", f.Name))
			continue
		}
		b.set(f.Name, fv.Interface(), InstanceField)
	}
	return b.build()
}

// Expand replaces the raw value stored under key with its symbolic constant
// name(s) from typeName. Slices become []any holding a name or nil per element.
func (in *Introspector) Expand(m AttributeMap, key, typeName, pattern string) AttributeMap {
	value := m.Get(key)
	if value == nil {
		return m
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return m.With(key, in.FindConstantName(typeName, value, pattern))
	}

	var elemType reflect.Type
	if et := rv.Type().Elem(); et.Kind() != reflect.Interface {
		elemType = et
	}
	consts := in.ExtractConstants(typeName, elemType, pattern)
	names := make([]any, rv.Len())
	for i := range names {
		item := rv.Index(i).Interface()
		for j := 0; j < consts.Len(); j++ {
			name, c := consts.Entry(j)
			if valuesEqual(c, item) {
				names[i] = name
				break
			}
		}
	}
	return m.With(key, names)
}

// MaskField describes one sub-field packed into an integer attribute.
type MaskField struct {
	Label   string
	Mask    uint64
	Pattern string
}

// ExpandMasked removes the packed integer stored under key and adds one
// attribute per field holding the constant name of value&Mask.
func (in *Introspector) ExpandMasked(m AttributeMap, key, typeName string, fields ...MaskField) AttributeMap {
	value := m.Get(key)
	if value == nil {
		return m
	}
	rv := reflect.ValueOf(value)
	if _, ok := toUint64(value); !ok {
		in.log.Debug("masked expansion of non-integer", zap.String("key", key), zap.String("type", rv.Type().String()))
		return m
	}
	out := m.Without(key)
	for _, f := range fields {
		masked := reflect.New(rv.Type()).Elem()
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			masked.SetInt(rv.Int() & int64(f.Mask))
		default:
			masked.SetUint(rv.Uint() & f.Mask)
		}
		out = out.With(f.Label, in.FindConstantName(typeName, masked.Interface(), f.Pattern))
	}
	return out
}

func isAccessor(mt reflect.Type) bool {
	// mt includes the receiver as its first input.
	if mt.NumIn() != 1 || mt.IsVariadic() {
		return false
	}
	switch mt.NumOut() {
	case 1:
		// Close, Flush, Sync and friends act rather than report.
		return mt.Out(0) != errorType
	case 2:
		return mt.Out(1) == errorType
	default:
		return false
	}
}

func invoke(method reflect.Value) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	out := method.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		callErr, _ := out[1].Interface().(error)
		if callErr == nil {
			callErr = errors.New("accessor returned a non-nil error")
		}
		return nil, callErr
	}
	return out[0].Interface(), nil
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
