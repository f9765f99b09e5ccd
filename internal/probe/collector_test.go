package probe

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/mobileinfo/internal/introspect"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "power/BAT0/type", "Battery")
	writeFile(t, root, "power/BAT0/status", "Full")
	writeFile(t, root, "power/BAT0/capacity", "100")
	writeFile(t, root, "proc/net/dev", procNetDev)
	writeFile(t, root, "hwmon/hwmon0/name", "acpitz")
	writeFile(t, root, "hwmon/hwmon0/temp1_input", "30000")

	return Options{
		PowerSupplyPath: filepath.Join(root, "power"),
		ProcNetDevPath:  filepath.Join(root, "proc/net/dev"),
		HwmonPath:       filepath.Join(root, "hwmon"),
		IIOPath:         filepath.Join(root, "iio"),
		FontDirs:        []string{filepath.Join(root, "fonts")},
		Permissions:     []PermissionSpec{{Name: "BATTERY_STATS", Path: filepath.Join(root, "power"), Mode: AccessRead}},
		Terminal:        func() Terminal { return Terminal{Columns: 100, Rows: 30, Interactive: true} },
		Getenv:          env(map[string]string{"LANG": "de_DE.UTF-8"}),
		Environ:         func() []string { return []string{"HOME=/home/tester", "EMPTY=", "bogus"} },
	}
}

func TestCollector_Collect(t *testing.T) {
	c := NewCollector(testOptions(t), nil)
	snap, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(snap.Batteries) != 1 || snap.Batteries[0].Status != BatteryStatusFull {
		t.Fatalf("batteries = %+v", snap.Batteries)
	}
	if len(snap.Sensors) != 1 || snap.Sensors[0].Values[0] != 30 {
		t.Fatalf("sensors = %+v", snap.Sensors)
	}
	if snap.Configuration.Locale != "de-DE" {
		t.Fatalf("locale = %q", snap.Configuration.Locale)
	}
	if snap.System.Environment["HOME"] != "/home/tester" || len(snap.System.Environment) != 2 {
		t.Fatalf("environment = %v", snap.System.Environment)
	}
	if len(snap.Permissions) != 1 || snap.Permissions[0].Result != Granted {
		t.Fatalf("permissions = %+v", snap.Permissions)
	}
	if snap.Taken.IsZero() {
		t.Fatalf("Taken not set")
	}
}

func TestCollector_CanceledContext(t *testing.T) {
	c := NewCollector(testOptions(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Collect(ctx); err == nil || !strings.Contains(err.Error(), "collect") {
		t.Fatalf("Collect() error = %v, want canceled", err)
	}
}

func TestRegistry_DescribesProbeCodes(t *testing.T) {
	in := introspect.New(introspect.NewSymbolTable(NewRegistry(), nil), nil)

	tests := []struct {
		typeName string
		value    any
		pattern  string
		want     string
	}{
		{BatteryManagerType, BatteryStatusNotCharging, "^BATTERY_STATUS_(.*)$", "NOT_CHARGING"},
		{BatteryManagerType, BatteryHealthOverheat, "^BATTERY_HEALTH_(.*)$", "OVERHEAT"},
		{ConfigurationType, OrientationLandscape, "^ORIENTATION_(.*)$", "LANDSCAPE"},
		{ConfigurationType, ScreenLayoutSizeXLarge, "^SCREENLAYOUT_SIZE_(.*)$", "XLARGE"},
		{ConfigurationType, UIModeNightYes, "^UI_MODE_NIGHT_(.*)$", "YES"},
		{ViewType, LayoutDirectionRTL, "^LAYOUT_DIRECTION_(.*)$", "RTL"},
		{SensorType, SensorTypeLight, "^TYPE_(.*)$", "LIGHT"},
	}
	for _, tt := range tests {
		if got := in.FindConstantName(tt.typeName, tt.value, tt.pattern); got != tt.want {
			t.Errorf("FindConstantName(%s, %v) = %q, want %q", tt.typeName, tt.value, got, tt.want)
		}
	}

	plugs := in.FlagNames(BatteryManagerType, BatteryPluggedAC|BatteryPluggedWireless, "^BATTERY_PLUGGED_(.*)$")
	if strings.Join(plugs, ",") != "AC,WIRELESS" {
		t.Errorf("FlagNames = %v", plugs)
	}
	if got := in.NearestConstant(SensorManagerType, 390, "^LIGHT_(.*)$"); got != "SUNRISE" {
		t.Errorf("NearestConstant(light) = %q, want SUNRISE", got)
	}
}
