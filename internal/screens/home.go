package screens

import (
	"fmt"
	"sort"

	"github.com/five82/mobileinfo/internal/introspect"
	"github.com/five82/mobileinfo/internal/probe"
	"github.com/five82/mobileinfo/internal/rows"
)

const (
	powerSupplyDocs = "https://www.kernel.org/doc/html/latest/power/power_supply_class.html"
	buildInfoDocs   = "https://pkg.go.dev/runtime/debug#BuildInfo"
)

// configurationMasks split the packed Configuration fields.
var configurationMasks = map[string][]introspect.MaskField{
	"ScreenLayout": {
		{Label: "ScreenLayoutSize", Mask: probe.ScreenLayoutSizeMask, Pattern: "^SCREENLAYOUT_SIZE_(.*)$"},
		{Label: "ScreenLayoutLong", Mask: probe.ScreenLayoutLongMask, Pattern: "^SCREENLAYOUT_LONG_(.*)$"},
		{Label: "ScreenLayoutDirection", Mask: probe.ScreenLayoutLayoutDirMask, Pattern: "^SCREENLAYOUT_LAYOUTDIR_(.*)$"},
		{Label: "ScreenLayoutRound", Mask: probe.ScreenLayoutRoundMask, Pattern: "^SCREENLAYOUT_ROUND_(.*)$"},
	},
	"UIMode": {
		{Label: "UIModeType", Mask: probe.UIModeTypeMask, Pattern: "^UI_MODE_TYPE_(.*)$"},
		{Label: "UIModeNight", Mask: probe.UIModeNightMask, Pattern: "^UI_MODE_NIGHT_(.*)$"},
	},
	"ColorMode": {
		{Label: "ColorModeWideColorGamut", Mask: probe.ColorModeWideColorGamutMask, Pattern: "^COLOR_MODE_WIDE_COLOR_GAMUT_(.*)$"},
		{Label: "ColorModeHdr", Mask: probe.ColorModeHDRMask, Pattern: "^COLOR_MODE_HDR_(.*)$"},
	},
}

// Home lists permissions, batteries, the terminal configuration and system
// details.
func (b *Builder) Home(s probe.Snapshot) []rows.Row {
	var out []rows.Row
	out = b.permissions(out, s.Permissions)
	out = b.batteries(out, s)
	out = b.configuration(out, s.Configuration)
	out = b.display(out, s.Terminal)
	out = b.system(out, s.System)
	return out
}

func (b *Builder) permissions(out []rows.Row, perms []probe.Permission) []rows.Row {
	if len(perms) == 0 {
		return out
	}
	out = append(out, rows.Header{ID: "permissions", Text: "Permissions"})
	for _, p := range perms {
		out = append(out, rows.KeyValue{
			ID:    "permission/" + p.Name,
			Key:   constantLabel(p.Name),
			Value: constantLabel(p.Result),
		})
	}
	return out
}

func (b *Builder) batteries(out []rows.Row, s probe.Snapshot) []rows.Row {
	out = append(out, rows.Header{ID: "battery", Text: "Battery", Link: powerSupplyDocs})
	out = errorRow(out, s, probe.ProbeBattery)
	if len(s.Batteries) == 0 {
		return append(out, rows.KeyValue{ID: "battery/none", Key: "Present", Value: display(false)})
	}
	for _, bat := range s.Batteries {
		out = b.battery(out, bat, len(s.Batteries) > 1)
	}
	return out
}

func (b *Builder) battery(out []rows.Row, bat probe.Battery, named bool) []rows.Row {
	prefix := "battery/" + bat.Name
	if named {
		out = append(out, rows.Header{ID: prefix, Text: bat.Name})
	}
	if !bat.Present {
		return append(out, rows.KeyValue{ID: prefix + "/Present", Key: "Present", Value: display(false)})
	}

	m := b.in.ExtractFields(&bat).
		Without("Name").
		Merge(b.in.ExtractProperties(bat, "^Charge$"))
	m = b.in.Expand(m, "Status", probe.BatteryManagerType, "^BATTERY_STATUS_(.*)$")
	m = b.in.Expand(m, "Health", probe.BatteryManagerType, "^BATTERY_HEALTH_(.*)$")

	plugged := b.in.FlagNames(probe.BatteryManagerType, bat.Plugged, "^BATTERY_PLUGGED_(.*)$")
	if len(plugged) == 0 {
		plugged = []string{"NONE"}
	}
	m = m.With("Plugged", plugged).
		With("Charge", fmt.Sprintf("%d%%", bat.Charge())).
		With("Voltage", fmt.Sprintf("%.2fV", float64(bat.Voltage)/1000)).
		With("Temperature", fmt.Sprintf("%.1f°C", float64(bat.Temperature)/10))
	return attributeRows(out, prefix, m, "Status", "Health", "Plugged")
}

func (b *Builder) configuration(out []rows.Row, cfg probe.Configuration) []rows.Row {
	out = append(out, rows.Header{ID: "config", Text: "Configuration"})

	m := b.in.ExtractFields(&cfg).Merge(b.in.ExtractProperties(cfg, ""))
	m = b.in.Expand(m, "Orientation", probe.ConfigurationType, "^ORIENTATION_(.*)$")
	m = b.in.Expand(m, "Keyboard", probe.ConfigurationType, "^KEYBOARD_(.*)$")
	m = b.in.Expand(m, "Navigation", probe.ConfigurationType, "^NAVIGATION_(.*)$")
	m = b.in.Expand(m, "Touchscreen", probe.ConfigurationType, "^TOUCHSCREEN_(.*)$")
	m = b.in.Expand(m, "LayoutDirection", probe.ViewType, "^LAYOUT_DIRECTION_(.*)$")

	symbolic := []string{"Orientation", "Keyboard", "Navigation", "Touchscreen", "LayoutDirection"}
	packed := make([]string, 0, len(configurationMasks))
	for key := range configurationMasks {
		packed = append(packed, key)
	}
	sort.Strings(packed)
	for _, key := range packed {
		fields := configurationMasks[key]
		m = b.in.ExpandMasked(m, key, probe.ConfigurationType, fields...)
		for _, f := range fields {
			symbolic = append(symbolic, f.Label)
		}
	}
	return attributeRows(out, "config", m, symbolic...)
}

func (b *Builder) display(out []rows.Row, t probe.Terminal) []rows.Row {
	out = append(out, rows.Header{ID: "display", Text: "Display"})
	return attributeRows(out, "display", b.in.ExtractFields(&t))
}

func (b *Builder) system(out []rows.Row, sys probe.System) []rows.Row {
	out = append(out, rows.Header{ID: "runtime", Text: "Runtime"})
	consts := b.in.ExtractConstants(probe.RuntimeType, nil, "")
	for i := 0; i < consts.Len(); i++ {
		name, value := consts.Entry(i)
		out = append(out, rows.KeyValue{ID: "runtime/" + name, Key: name, Value: display(value)})
	}

	out = append(out, rows.Header{ID: "system", Text: "System"})
	m := b.in.ExtractFields(&sys).Without("Kernel").Without("Build").Without("Environment")
	out = attributeRows(out, "system", m)

	out = append(out, rows.Header{ID: "kernel", Text: "Kernel"})
	out = attributeRows(out, "kernel", b.in.ExtractFields(&sys.Kernel))

	if len(sys.Build) > 0 {
		out = append(out, rows.Header{ID: "build", Text: "Build Settings", Link: buildInfoDocs})
		for _, setting := range sys.Build {
			out = append(out, rows.KeyValue{ID: "build/" + setting.Key, Key: setting.Key, Value: setting.Value})
		}
	}

	out = append(out, rows.Header{ID: "env", Text: "Environment Variables"})
	env := introspect.FromValues(sys.Environment)
	for i := 0; i < env.Len(); i++ {
		name, value := env.Entry(i)
		out = append(out, rows.KeyValue{ID: "env/" + name, Key: name, Value: display(value)})
	}
	return out
}
