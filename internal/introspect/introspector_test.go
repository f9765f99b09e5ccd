package introspect

import (
	"errors"
	"net"
	"reflect"
	"slices"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testRegistry() *Registry {
	return NewRegistry(
		TypeDescriptor{Name: "BatteryManager", Constants: []Constant{
			Const("BATTERY_HEALTH_GOOD", 2),
			Const("BATTERY_PLUGGED_AC", 1),
			Const("BATTERY_PLUGGED_USB", 2),
			Const("BATTERY_STATUS_CHARGING", 2),
			Const("BATTERY_STATUS_FULL", 5),
			Const("EXTRA_LEVEL", "level"),
		}},
		TypeDescriptor{Name: "Configuration", Constants: []Constant{
			Const("SCREENLAYOUT_SIZE_MASK", 0x0f),
			Const("SCREENLAYOUT_SIZE_NORMAL", 0x02),
			Const("SCREENLAYOUT_SIZE_LARGE", 0x03),
			Const("SCREENLAYOUT_LONG_MASK", 0x30),
			Const("SCREENLAYOUT_LONG_NO", 0x10),
			Const("SCREENLAYOUT_LONG_YES", 0x20),
		}},
		TypeDescriptor{Name: "net.Flags", Constants: []Constant{
			Const("FlagUp", net.FlagUp),
			Const("FlagBroadcast", net.FlagBroadcast),
			Const("FlagLoopback", net.FlagLoopback),
			Const("FlagMulticast", net.FlagMulticast),
		}},
		TypeDescriptor{Name: "SensorManager", Constants: []Constant{
			Const("GRAVITY_EARTH", float32(9.80665)),
			Const("GRAVITY_MOON", float32(1.6)),
			Const("GRAVITY_SUN", float32(275.0)),
		}},
	)
}

func newTestIntrospector(log *zap.Logger) *Introspector {
	return New(NewSymbolTable(testRegistry(), log), log)
}

func TestExtractConstants_FiltersTypeAndPattern(t *testing.T) {
	in := newTestIntrospector(nil)

	got := in.ExtractConstants("BatteryManager", reflect.TypeOf((*int)(nil)).Elem(), "BATTERY_STATUS_(.*)")
	if names := got.Names(); !slices.Equal(names, []string{"CHARGING", "FULL"}) {
		t.Fatalf("names = %v, want [CHARGING FULL]", names)
	}
	if got.Get("CHARGING") != 2 || got.Get("FULL") != 5 {
		t.Fatalf("values = %v", got.Values())
	}
	for _, a := range got.Attributes() {
		if a.Source != ConstantField {
			t.Fatalf("source = %v, want constant", a.Source)
		}
	}
}

func TestExtractConstants_NoPatternKeepsRawNames(t *testing.T) {
	in := newTestIntrospector(nil)

	got := in.ExtractConstants("BatteryManager", nil, "")
	if got.Len() != 6 {
		t.Fatalf("Len = %d, want 6", got.Len())
	}
	if got.Get("EXTRA_LEVEL") != "level" {
		t.Fatalf("EXTRA_LEVEL = %v, want level", got.Get("EXTRA_LEVEL"))
	}

	strs := in.ExtractConstants("BatteryManager", reflect.TypeOf((*string)(nil)).Elem(), "")
	if names := strs.Names(); !slices.Equal(names, []string{"EXTRA_LEVEL"}) {
		t.Fatalf("string constants = %v", names)
	}
}

func TestExtractConstants_PatternWithoutGroupUsesIdentifier(t *testing.T) {
	in := newTestIntrospector(nil)

	got := in.ExtractConstants("BatteryManager", nil, "^BATTERY_PLUGGED")
	if names := got.Names(); !slices.Equal(names, []string{"BATTERY_PLUGGED_AC", "BATTERY_PLUGGED_USB"}) {
		t.Fatalf("names = %v", names)
	}
}

func TestExtractConstants_UnknownTypeOrBadPatternIsEmpty(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	in := newTestIntrospector(zap.New(core))

	if got := in.ExtractConstants("Missing", nil, ""); got.Len() != 0 {
		t.Fatalf("unknown type Len = %d, want 0", got.Len())
	}
	if got := in.ExtractConstants("BatteryManager", nil, "("); got.Len() != 0 {
		t.Fatalf("bad pattern Len = %d, want 0", got.Len())
	}
	if logs.FilterMessage("invalid name pattern").Len() != 1 {
		t.Fatalf("expected one invalid pattern warning, got %d", logs.Len())
	}
}

func TestFindConstantName(t *testing.T) {
	in := newTestIntrospector(nil)

	if got := in.FindConstantName("BatteryManager", 5, "BATTERY_STATUS_(.*)"); got != "FULL" {
		t.Fatalf("FindConstantName(5) = %q, want FULL", got)
	}
	if got := in.FindConstantName("BatteryManager", 7, "BATTERY_STATUS_(.*)"); got != "" {
		t.Fatalf("FindConstantName(7) = %q, want empty", got)
	}
	// Equality is type sensitive.
	if got := in.FindConstantName("BatteryManager", int64(5), "BATTERY_STATUS_(.*)"); got != "" {
		t.Fatalf("FindConstantName(int64) = %q, want empty", got)
	}
}

func TestFindConstantName_AgreesWithExtractConstants(t *testing.T) {
	in := newTestIntrospector(nil)
	pattern := "BATTERY_(.*)"

	for _, v := range []int{0, 1, 2, 5, 9} {
		name := in.FindConstantName("BatteryManager", v, pattern)
		consts := in.ExtractConstants("BatteryManager", reflect.TypeOf(v), pattern)
		if name == "" {
			for i := 0; i < consts.Len(); i++ {
				if _, c := consts.Entry(i); c == v {
					t.Fatalf("FindConstantName(%d) = empty but constant exists", v)
				}
			}
			continue
		}
		if consts.Get(name) != v {
			t.Fatalf("ExtractConstants[%q] = %v, want %d", name, consts.Get(name), v)
		}
	}
}

func TestFindConstantName_SkipsShadowedDisplayName(t *testing.T) {
	in := New(NewSymbolTable(NewRegistry(
		TypeDescriptor{Name: "Collide", Constants: []Constant{
			Const("A_X", 1),
			Const("B_X", 2),
			Const("C_Y", 1),
		}},
	), nil), nil)
	pattern := "^._(.)$"

	tests := []struct {
		value int
		want  string
	}{
		{1, "Y"},
		{2, "X"},
		{3, ""},
	}
	for _, tt := range tests {
		name := in.FindConstantName("Collide", tt.value, pattern)
		if name != tt.want {
			t.Fatalf("FindConstantName(%d) = %q, want %q", tt.value, name, tt.want)
		}
		if name == "" {
			continue
		}
		consts := in.ExtractConstants("Collide", reflect.TypeOf(tt.value), pattern)
		if consts.Get(name) != tt.value {
			t.Fatalf("ExtractConstants[%q] = %v, want %d", name, consts.Get(name), tt.value)
		}
	}
}

func TestFlagNamesAndNearest(t *testing.T) {
	in := newTestIntrospector(nil)

	got := in.FlagNames("net.Flags", net.FlagUp|net.FlagLoopback, "^Flag(.*)$")
	if !slices.Equal(got, []string{"Loopback", "Up"}) {
		t.Fatalf("FlagNames = %v, want [Loopback Up]", got)
	}
	if got := in.FlagNames("net.Flags", "up", ""); got != nil {
		t.Fatalf("FlagNames(non-integer) = %v, want nil", got)
	}

	if got := in.NearestConstant("SensorManager", -9.7, "GRAVITY_(.+)"); got != "EARTH" {
		t.Fatalf("NearestConstant = %q, want EARTH", got)
	}
	if got := in.NearestConstant("SensorManager", 0.9, "GRAVITY_(.+)"); got != "MOON" {
		t.Fatalf("NearestConstant = %q, want MOON", got)
	}
}

type baseMetrics struct {
	Density float64
}

type displayMetrics struct {
	baseMetrics
	WidthPixels  int
	HeightPixels int
	secret       string
}

func TestExtractFields(t *testing.T) {
	in := newTestIntrospector(nil)
	dm := &displayMetrics{baseMetrics: baseMetrics{Density: 2.5}, WidthPixels: 1080, HeightPixels: 2340, secret: "x"}

	got := in.ExtractFields(dm)
	if names := got.Names(); !slices.Equal(names, []string{"Density", "HeightPixels", "WidthPixels"}) {
		t.Fatalf("names = %v", names)
	}
	if got.Get("Density") != 2.5 || got.Get("WidthPixels") != 1080 {
		t.Fatalf("values = %v", got.Values())
	}

	if got := in.ExtractFields((*displayMetrics)(nil)); got.Len() != 0 {
		t.Fatalf("nil pointer Len = %d, want 0", got.Len())
	}
	if got := in.ExtractFields(42); got.Len() != 0 {
		t.Fatalf("non-struct Len = %d, want 0", got.Len())
	}
}

type device struct {
	name  string
	level int
}

func (d device) Name() string            { return d.name }
func (d device) IsCharging() bool        { return true }
func (d *device) GetLevel() int          { return d.level }
func (d device) Broken() (int, error)    { return 0, errors.New("boom") }
func (d device) Healthy() (string, error) { return "GOOD", nil }
func (d device) Panics() int             { panic("bad accessor") }
func (d device) String() string          { return "device" }
func (d device) Scaled(x int) int        { return x * d.level }
func (d device) Touch()                  {}

func TestExtractProperties_DefaultPattern(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	in := newTestIntrospector(zap.New(core))

	got := in.ExtractProperties(device{name: "BAT0", level: 80}, "")
	want := []string{"Charging", "Healthy", "Level", "Name"}
	if names := got.Names(); !slices.Equal(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	if got.Get("Level") != 80 || got.Get("Name") != "BAT0" || got.Get("Healthy") != "GOOD" {
		t.Fatalf("values = %v", got.Values())
	}
	if n := logs.FilterMessage("accessor failed").Len(); n != 2 {
		t.Fatalf("accessor failures logged = %d, want 2", n)
	}
}

func TestExtractProperties_NamesFollowCaptureGroup(t *testing.T) {
	in := newTestIntrospector(nil)
	d := &device{name: "BAT0", level: 10}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"^Is(.*)$", []string{"Charging"}},
		{"^Get(.*)$", []string{"Level"}},
		{"^Name$", []string{"Name"}},
		{"^Nope", nil},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := in.ExtractProperties(d, tt.pattern).Names()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("ExtractProperties(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

type syncer struct {
	closed, flushed int
}

func (s *syncer) Close() error { s.closed++; return nil }
func (s *syncer) Flush() error { s.flushed++; return nil }
func (s *syncer) Pending() int { return 3 }

func TestExtractProperties_SkipsErrorOnlyMethods(t *testing.T) {
	in := newTestIntrospector(nil)
	s := &syncer{}

	got := in.ExtractProperties(s, "")
	if names := got.Names(); !slices.Equal(names, []string{"Pending"}) {
		t.Fatalf("names = %v, want [Pending]", names)
	}
	if s.closed != 0 || s.flushed != 0 {
		t.Fatalf("closed = %d, flushed = %d, want no calls", s.closed, s.flushed)
	}
}

func TestExtractProperties_NilIsEmpty(t *testing.T) {
	in := newTestIntrospector(nil)
	if got := in.ExtractProperties(nil, ""); got.Len() != 0 {
		t.Fatalf("nil Len = %d, want 0", got.Len())
	}
	if got := in.ExtractProperties((*device)(nil), ""); got.Len() != 0 {
		t.Fatalf("nil pointer Len = %d, want 0", got.Len())
	}
}

func TestExpand(t *testing.T) {
	in := newTestIntrospector(nil)
	m := FromValues(map[string]any{
		"status": 5,
		"plugs":  []int{1, 2, 9},
		"other":  "x",
	})

	out := in.Expand(m, "status", "BatteryManager", "BATTERY_STATUS_(.*)")
	if out.Get("status") != "FULL" {
		t.Fatalf("status = %v, want FULL", out.Get("status"))
	}
	if m.Get("status") != 5 {
		t.Fatalf("original map mutated: %v", m.Get("status"))
	}

	out = in.Expand(out, "plugs", "BatteryManager", "BATTERY_PLUGGED_(.*)")
	want := []any{"AC", "USB", nil}
	if !reflect.DeepEqual(out.Get("plugs"), want) {
		t.Fatalf("plugs = %#v, want %#v", out.Get("plugs"), want)
	}

	if same := in.Expand(out, "missing", "BatteryManager", ""); !same.Equal(out) {
		t.Fatalf("expanding a missing key changed the map")
	}
}

func TestExpandMasked(t *testing.T) {
	in := newTestIntrospector(nil)
	m := NewAttributeMap(Attribute{Name: "screenLayout", Value: 0x22})

	out := in.ExpandMasked(m, "screenLayout", "Configuration",
		MaskField{Label: "Screen Layout Size", Mask: 0x0f, Pattern: "SCREENLAYOUT_SIZE_(.*)"},
		MaskField{Label: "Screen Layout Long", Mask: 0x30, Pattern: "SCREENLAYOUT_LONG_(.*)"},
	)
	if out.Has("screenLayout") {
		t.Fatalf("packed key should be removed")
	}
	if out.Get("Screen Layout Size") != "NORMAL" || out.Get("Screen Layout Long") != "YES" {
		t.Fatalf("expanded = %v", out.Values())
	}
}

func TestSymbolTable_ConcurrentFirstUse(t *testing.T) {
	symbols := NewSymbolTable(testRegistry(), nil)

	var wg sync.WaitGroup
	results := make([]AttributeMap, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = symbols.Constants("BatteryManager", reflect.TypeOf((*int)(nil)).Elem(), "BATTERY_STATUS_(.*)")
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if !r.Equal(results[0]) || r.Len() != 2 {
			t.Fatalf("result %d = %v, want %v", i, r.Values(), results[0].Values())
		}
	}
}
