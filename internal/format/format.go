package format

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

const null = "null"

var (
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// Options controls how containers are joined. Scalars ignore them.
type Options struct {
	Separator     string
	Prefix        string
	Suffix        string
	PairSeparator string
}

// DefaultOptions returns newline-separated, unwrapped output with ":" between
// map keys and values.
func DefaultOptions() Options {
	return Options{Separator: "\n", PairSeparator: ":"}
}

// Option adjusts Options.
type Option func(*Options)

// WithSeparator sets the string placed between container elements.
func WithSeparator(sep string) Option {
	return func(o *Options) { o.Separator = sep }
}

// WithWrap sets the strings placed before and after a container.
func WithWrap(prefix, suffix string) Option {
	return func(o *Options) {
		o.Prefix = prefix
		o.Suffix = suffix
	}
}

// WithPairSeparator sets the string placed between a map key and its value.
func WithPairSeparator(sep string) Option {
	return func(o *Options) { o.PairSeparator = sep }
}

// Pairs is an ordered key/value sequence. Implementations keep their own order
// instead of being sorted like Go maps.
type Pairs interface {
	Len() int
	Entry(i int) (string, any)
}

// Format renders v as display text.
func Format(v any, opts ...Option) string {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o.Format(v)
}

// Format renders v using o for the outermost container. Nested elements use
// DefaultOptions.
func (o Options) Format(v any) string {
	if v == nil {
		return null
	}
	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return null
	}

	switch x := v.(type) {
	case string:
		return x
	case Pairs:
		return o.pairs(x)
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}
	if text, ok := pointerText(rv); ok {
		return text
	}

	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.Complex64:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 64)
	case reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 128)
	case reflect.String:
		return rv.String()
	case reflect.Slice, reflect.Array:
		return o.sequence(rv)
	case reflect.Map:
		return o.mapping(rv)
	case reflect.Pointer:
		return o.Format(rv.Elem().Interface())
	default:
		return ""
	}
}

func (o Options) sequence(rv reflect.Value) string {
	def := DefaultOptions()
	var sb strings.Builder
	sb.WriteString(o.Prefix)
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			sb.WriteString(o.Separator)
		}
		sb.WriteString(def.Format(rv.Index(i).Interface()))
	}
	sb.WriteString(o.Suffix)
	return sb.String()
}

func (o Options) mapping(rv reflect.Value) string {
	def := DefaultOptions()
	type entry struct{ key, value string }
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{
			key:   def.Format(iter.Key().Interface()),
			value: def.Format(iter.Value().Interface()),
		})
	}
	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })

	var sb strings.Builder
	sb.WriteString(o.Prefix)
	for i, e := range entries {
		if i > 0 {
			sb.WriteString(o.Separator)
		}
		sb.WriteString(e.key)
		sb.WriteString(o.PairSeparator)
		sb.WriteString(e.value)
	}
	sb.WriteString(o.Suffix)
	return sb.String()
}

func (o Options) pairs(p Pairs) string {
	def := DefaultOptions()
	var sb strings.Builder
	sb.WriteString(o.Prefix)
	for i := 0; i < p.Len(); i++ {
		if i > 0 {
			sb.WriteString(o.Separator)
		}
		k, v := p.Entry(i)
		sb.WriteString(k)
		sb.WriteString(o.PairSeparator)
		sb.WriteString(def.Format(v))
	}
	sb.WriteString(o.Suffix)
	return sb.String()
}

// pointerText covers values whose Error or String method has a pointer
// receiver. The value is copied so the method cannot touch the caller's data.
func pointerText(rv reflect.Value) (string, bool) {
	if rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		return "", false
	}
	pt := reflect.PointerTo(rv.Type())
	if !pt.Implements(errorType) && !pt.Implements(stringerType) {
		return "", false
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	switch x := p.Interface().(type) {
	case error:
		return x.Error(), true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}
