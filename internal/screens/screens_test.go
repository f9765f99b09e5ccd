package screens

import (
	"net"
	"runtime"
	"testing"

	"github.com/five82/mobileinfo/internal/introspect"
	"github.com/five82/mobileinfo/internal/probe"
	"github.com/five82/mobileinfo/internal/rows"
)

func newTestBuilder() *Builder {
	symbols := introspect.NewSymbolTable(probe.NewRegistry(), nil)
	return NewBuilder(introspect.New(symbols, nil), nil)
}

func byID(t *testing.T, rs []rows.Row) map[string]rows.Row {
	t.Helper()
	m := make(map[string]rows.Row, len(rs))
	for _, r := range rs {
		if _, dup := m[r.RowID()]; dup {
			t.Fatalf("duplicate row identity %q", r.RowID())
		}
		m[r.RowID()] = r
	}
	return m
}

func value(t *testing.T, m map[string]rows.Row, id string) string {
	t.Helper()
	r, ok := m[id]
	if !ok {
		t.Fatalf("row %q missing", id)
	}
	kv, ok := r.(rows.KeyValue)
	if !ok {
		t.Fatalf("row %q is %T, want KeyValue", id, r)
	}
	return kv.Value
}

func homeSnapshot() probe.Snapshot {
	return probe.Snapshot{
		Permissions: []probe.Permission{{Name: "BATTERY_STATS", Path: "/sys", Result: probe.Granted}},
		Batteries: []probe.Battery{{
			Name:        "BAT0",
			Present:     true,
			Status:      probe.BatteryStatusFull,
			Health:      probe.BatteryHealthGood,
			Plugged:     probe.BatteryPluggedAC | probe.BatteryPluggedUSB,
			Level:       80,
			Scale:       100,
			Voltage:     12450,
			Temperature: 312,
			Technology:  "Li-ion",
		}},
		Configuration: probe.Configuration{
			Orientation:  probe.OrientationPortrait,
			ScreenLayout: probe.ScreenLayoutSizeNormal | probe.ScreenLayoutLongNo | probe.ScreenLayoutLayoutDirLTR | probe.ScreenLayoutRoundNo,
			UIMode:       probe.UIModeTypeNormal | probe.UIModeNightYes,
			ColorMode:    probe.ColorModeWideColorGamutNo | probe.ColorModeHDRNo,
			Keyboard:     probe.KeyboardQwerty,
			Navigation:   probe.NavigationNoNav,
			Touchscreen:  probe.TouchscreenNoTouch,
			Locale:       "en-US",
		},
		Terminal: probe.Terminal{Columns: 120, Rows: 40, Interactive: true},
		System: probe.System{
			NumCPU:      8,
			Kernel:      probe.Kernel{Sysname: "Linux", Release: "6.8.0"},
			Build:       []probe.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
			Environment: map[string]string{"HOME": "/home/u"},
		},
	}
}

func TestHome_BatteryRows(t *testing.T) {
	m := byID(t, newTestBuilder().Home(homeSnapshot()))

	tests := map[string]string{
		"battery/BAT0/Status":      "Full",
		"battery/BAT0/Health":      "Good",
		"battery/BAT0/Plugged":     "AC, USB",
		"battery/BAT0/Charge":      "80%",
		"battery/BAT0/Voltage":     "12.45V",
		"battery/BAT0/Temperature": "31.2°C",
		"battery/BAT0/Technology":  "Li-ion",
		"battery/BAT0/Low":         "false",
		"permission/BATTERY_STATS": "Granted",
	}
	for id, want := range tests {
		if got := value(t, m, id); got != want {
			t.Errorf("%s = %q, want %q", id, got, want)
		}
	}
	if _, ok := m["battery/BAT0/Name"]; ok {
		t.Errorf("battery name should only appear in the header")
	}
	if kv := m["battery/BAT0/Status"].(rows.KeyValue); kv.Key != "Status" {
		t.Errorf("status key = %q", kv.Key)
	}
}

func TestHome_UnpluggedAndAbsentBatteries(t *testing.T) {
	s := homeSnapshot()
	s.Batteries[0].Plugged = 0
	s.Batteries = append(s.Batteries, probe.Battery{Name: "BAT1"})
	m := byID(t, newTestBuilder().Home(s))

	if got := value(t, m, "battery/BAT0/Plugged"); got != "None" {
		t.Errorf("Plugged = %q, want None", got)
	}
	if _, ok := m["battery/BAT1"].(rows.Header); !ok {
		t.Errorf("multiple batteries should each get a header")
	}
	if got := value(t, m, "battery/BAT1/Present"); got != "false" {
		t.Errorf("absent battery Present = %q", got)
	}
	if _, ok := m["battery/BAT1/Status"]; ok {
		t.Errorf("absent battery should only report Present")
	}
}

func TestHome_ConfigurationIsExpanded(t *testing.T) {
	m := byID(t, newTestBuilder().Home(homeSnapshot()))

	tests := map[string]string{
		"config/Orientation":             "Portrait",
		"config/Keyboard":                "QWERTY",
		"config/Navigation":              "Nonav",
		"config/Touchscreen":             "Notouch",
		"config/LayoutDirection":         "LTR",
		"config/ScreenLayoutSize":        "Normal",
		"config/ScreenLayoutLong":        "No",
		"config/ScreenLayoutDirection":   "LTR",
		"config/ScreenLayoutRound":       "No",
		"config/UIModeType":              "Normal",
		"config/UIModeNight":             "Yes",
		"config/ColorModeWideColorGamut": "No",
		"config/ColorModeHdr":            "No",
		"config/NightModeActive":         "true",
		"config/Locale":                  "en-US",
	}
	for id, want := range tests {
		if got := value(t, m, id); got != want {
			t.Errorf("%s = %q, want %q", id, got, want)
		}
	}
	for _, packed := range []string{"config/ScreenLayout", "config/UIMode", "config/ColorMode"} {
		if _, ok := m[packed]; ok {
			t.Errorf("packed field %s should be replaced by its parts", packed)
		}
	}
}

func TestHome_SystemSections(t *testing.T) {
	m := byID(t, newTestBuilder().Home(homeSnapshot()))

	if got := value(t, m, "runtime/GOOS"); got != runtime.GOOS {
		t.Errorf("runtime/GOOS = %q", got)
	}
	if got := value(t, m, "system/NumCPU"); got != "8" {
		t.Errorf("system/NumCPU = %q", got)
	}
	if got := value(t, m, "kernel/Release"); got != "6.8.0" {
		t.Errorf("kernel/Release = %q", got)
	}
	if got := value(t, m, "build/vcs.revision"); got != "abc123" {
		t.Errorf("build/vcs.revision = %q", got)
	}
	if got := value(t, m, "env/HOME"); got != "/home/u" {
		t.Errorf("env/HOME = %q", got)
	}
	if _, ok := m["system/Environment"]; ok {
		t.Errorf("environment should be its own section")
	}
	if got := value(t, m, "display/Columns"); got != "120" {
		t.Errorf("display/Columns = %q", got)
	}
}

func TestHome_RepeatedSnapshotsUpdateInPlace(t *testing.T) {
	b := newTestBuilder()
	list := rows.NewList()
	s := homeSnapshot()
	list.Reconcile(b.Home(s)...)
	size := list.Len()

	s.Batteries[0].Level = 81
	events := list.Reconcile(b.Home(s)...)
	if list.Len() != size {
		t.Fatalf("row count changed: %d -> %d", size, list.Len())
	}
	changed := map[string]bool{}
	for _, e := range events {
		if e.Kind != rows.Changed || e.Moved() {
			t.Fatalf("unexpected event %v", e)
		}
		changed[e.ID] = true
	}
	if len(changed) != 2 || !changed["battery/BAT0/Level"] || !changed["battery/BAT0/Charge"] {
		t.Fatalf("changed rows = %v, want Level and Charge", changed)
	}
}

func TestNetwork(t *testing.T) {
	s := probe.Snapshot{
		Network: probe.Network{
			State:  probe.NetworkAvailable,
			Routed: "eth0",
			IPv4:   true,
			Interfaces: []probe.Interface{{
				Name:         "eth0",
				Index:        2,
				MTU:          1500,
				HardwareAddr: "aa:bb:cc:dd:ee:ff",
				Flags:        net.FlagUp | net.FlagBroadcast,
				Addrs:        []string{"10.0.0.2/24", "fe80::1/64"},
				RxBytes:      100,
				TxPackets:    3,
			}},
		},
		Errors: map[string]string{probe.ProbeNetwork: "counters: permission denied"},
	}
	rs := newTestBuilder().Network(s)
	m := byID(t, rs)

	tests := map[string]string{
		"network/State":           "Available",
		"network/Routed":          "eth0",
		"network/IPv4":            "true",
		"iface/eth0/Flags":        "Broadcast, Up",
		"iface/eth0/MTU":          "1500",
		"iface/eth0/Addrs":        "10.0.0.2/24, fe80::1/64",
		"iface/eth0/HardwareAddr": "aa:bb:cc:dd:ee:ff",
		"error/network":           "counters: permission denied",
	}
	for id, want := range tests {
		if got := value(t, m, id); got != want {
			t.Errorf("%s = %q, want %q", id, got, want)
		}
	}
	if kv := m["network/IPv4"].(rows.KeyValue); kv.Key != "IPv4" {
		t.Errorf("IPv4 key = %q", kv.Key)
	}
	grid, ok := m["iface/eth0/counters"].(rows.Grid)
	if !ok {
		t.Fatalf("counters row missing")
	}
	if grid.Pairs[0] != (rows.Pair{Key: "RX", Value: "100 B"}) || grid.Pairs[3].Value != "3" {
		t.Errorf("counters = %+v", grid.Pairs)
	}
	if _, ok := m["network/Interfaces"]; ok {
		t.Errorf("interfaces should be listed individually")
	}
}

func TestSensors(t *testing.T) {
	s := probe.Snapshot{Sensors: []probe.Sensor{
		{Name: "accel_3d", Vendor: "iio", Type: probe.SensorTypeAccelerometer, Values: []float64{0, 0, 9.81}, Unit: "m/s²", Source: "iio:device0/accel"},
		{Name: "als", Vendor: "iio", Type: probe.SensorTypeLight, Values: []float64{420}, Unit: "lx", Source: "iio:device1/illuminance"},
		{Name: "prox", Vendor: "iio", Type: probe.SensorTypeProximity, Values: []float64{0}, Source: "iio:device2/proximity"},
		{Name: "coretemp Package id 0", Vendor: "coretemp", Type: probe.SensorTypeAmbientTemperature, Values: []float64{45}, Unit: "°C", Source: "hwmon0/temp1"},
	}}
	m := byID(t, newTestBuilder().Sensors(s))

	tests := map[string]string{
		"sensor/iio:device0/accel":       "0.00, 0.00, 9.81 m/s² (Earth)",
		"sensor/iio:device1/illuminance": "420.00 lx (Sunrise)",
		"sensor/iio:device2/proximity":   "Near",
		"sensor/hwmon0/temp1":            "45.00 °C",
	}
	for id, want := range tests {
		if got := value(t, m, id); got != want {
			t.Errorf("%s = %q, want %q", id, got, want)
		}
	}
	info, ok := m["sensor/hwmon0/temp1/info"].(rows.Grid)
	if !ok {
		t.Fatalf("info grid missing")
	}
	want := []rows.Pair{{Key: "Type", Value: "Ambient Temperature"}, {Key: "Vendor", Value: "coretemp"}}
	if info.Pairs[0] != want[0] || info.Pairs[1] != want[1] {
		t.Errorf("info = %+v, want %+v", info.Pairs, want)
	}
}

func TestSensors_NoneFound(t *testing.T) {
	m := byID(t, newTestBuilder().Sensors(probe.Snapshot{}))
	if got := value(t, m, "sensors/none"); got != "none found" {
		t.Errorf("sensors/none = %q", got)
	}
}

func TestFonts(t *testing.T) {
	s := probe.Snapshot{Fonts: []probe.Font{
		{Family: "Go", Style: "Regular"},
		{Family: "Go", Style: "Bold"},
		{Family: "", Style: "Regular"},
	}}
	rs := newTestBuilder().Fonts(s)
	if h, ok := rs[0].(rows.Header); !ok || h.Text != "Fonts (2 families)" {
		t.Fatalf("header = %+v", rs[0])
	}
	m := byID(t, rs)
	if got := value(t, m, "font/Go"); got != "Regular, Bold" {
		t.Errorf("font/Go = %q", got)
	}
	if kv := m["font/"].(rows.KeyValue); kv.Key != "(unnamed)" {
		t.Errorf("unnamed family key = %q", kv.Key)
	}
}

func TestLogs(t *testing.T) {
	b := newTestBuilder()

	disabled := byID(t, b.Logs("", nil))
	if got := value(t, disabled, "logs/disabled"); got != "not configured" {
		t.Errorf("logs/disabled = %q", got)
	}

	lines := []string{
		"2026-10-18T09:14:02.113+0200\tINFO\tpoll\t{\"n\": 1}",
		"2026-10-18T09:14:02.113+0200\tINFO\tpoll\t{\"n\": 1}",
		"2026-10-18T09:14:04.000+0200\tWARN\taccessor failed",
	}
	rs := b.Logs("/tmp/mobileinfo.log", lines)
	if len(rs) != 4 {
		t.Fatalf("got %d rows, want 4", len(rs))
	}
	m := byID(t, rs)
	first := m["log/2026-10-18T09:14:02.113+0200/poll"].(rows.KeyValue)
	if first.Key != "09:14:02 INFO" || first.Value != "poll {\"n\": 1}" {
		t.Errorf("first = %+v", first)
	}
	if _, ok := m["log/2026-10-18T09:14:02.113+0200/poll#2"]; !ok {
		t.Errorf("repeated line should get its own identity")
	}
}

func TestBuildAndParse(t *testing.T) {
	b := newTestBuilder()
	for _, id := range All {
		got, ok := Parse(string(id))
		if !ok || got != id {
			t.Errorf("Parse(%q) = %q, %v", id, got, ok)
		}
		if id.Title() == "" {
			t.Errorf("%s has no title", id)
		}
		if len(b.Build(id, Input{})) == 0 {
			t.Errorf("Build(%s) returned no rows", id)
		}
	}
	if _, ok := Parse("bogus"); ok {
		t.Errorf("Parse(bogus) should fail")
	}
	if rs := b.Build(ID("bogus"), Input{}); rs != nil {
		t.Errorf("Build(bogus) = %v", rs)
	}
}
