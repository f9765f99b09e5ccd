package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultPowerSupplyPath is where Linux exposes batteries and chargers.
const DefaultPowerSupplyPath = "/sys/class/power_supply"

// Battery is one battery in BatteryManager terms. Status, Health and Plugged
// hold BatteryStatus*, BatteryHealth* and BatteryPlugged* codes.
type Battery struct {
	Name        string
	Present     bool
	Status      int
	Health      int
	Plugged     int
	Level       int
	Scale       int
	Voltage     int // millivolts
	Temperature int // tenths of a degree Celsius
	Technology  string
	Low         bool
}

// Charge returns the charge as a percentage of Scale.
func (b Battery) Charge() int {
	if b.Scale <= 0 {
		return 0
	}
	return 100 * b.Level / b.Scale
}

// BatteryReader reads batteries from a power_supply directory.
type BatteryReader struct {
	mu   sync.Mutex
	root string
}

// NewBatteryReader returns a reader rooted at root, or the system path when
// root is empty.
func NewBatteryReader(root string) *BatteryReader {
	if root == "" {
		root = DefaultPowerSupplyPath
	}
	return &BatteryReader{root: root}
}

// Read returns every battery found. A missing power_supply directory yields no
// batteries and no error.
func (r *BatteryReader) Read() ([]Battery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.root); os.IsNotExist(err) {
		return nil, nil
	}
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.root, err)
	}

	var batteries []Battery
	plugged := 0
	for _, entry := range entries {
		dir := filepath.Join(r.root, entry.Name())
		supplyType, err := readString(filepath.Join(dir, "type"))
		if err != nil {
			continue
		}
		switch strings.ToLower(supplyType) {
		case "battery":
			batteries = append(batteries, readBattery(dir, entry.Name()))
		case "mains", "ups":
			if online(dir) {
				plugged |= BatteryPluggedAC
			}
		case "usb", "usb_c", "usb_pd", "usb_dcp", "usb_cdp":
			if online(dir) {
				plugged |= BatteryPluggedUSB
			}
		case "wireless":
			if online(dir) {
				plugged |= BatteryPluggedWireless
			}
		}
	}

	for i := range batteries {
		batteries[i].Plugged = plugged
	}
	return batteries, nil
}

func readBattery(dir, name string) Battery {
	b := Battery{
		Name:    name,
		Present: true,
		Status:  BatteryStatusUnknown,
		Health:  BatteryHealthUnknown,
		Scale:   100,
	}
	if present, err := readInt(filepath.Join(dir, "present")); err == nil {
		b.Present = present == 1
	}
	if status, err := readString(filepath.Join(dir, "status")); err == nil {
		b.Status = batteryStatusCode(status)
	}
	if health, err := readString(filepath.Join(dir, "health")); err == nil {
		b.Health = batteryHealthCode(health)
	}
	if capacity, err := readInt(filepath.Join(dir, "capacity")); err == nil {
		b.Level = int(capacity)
	}
	if uv, err := readInt(filepath.Join(dir, "voltage_now")); err == nil {
		b.Voltage = int(uv / 1000)
	}
	if temp, err := readInt(filepath.Join(dir, "temp")); err == nil {
		b.Temperature = int(temp)
	}
	if tech, err := readString(filepath.Join(dir, "technology")); err == nil {
		b.Technology = tech
	}
	level, err := readString(filepath.Join(dir, "capacity_level"))
	switch {
	case err == nil:
		b.Low = level == "Low" || level == "Critical"
	default:
		b.Low = b.Level > 0 && b.Level <= 15
	}
	return b
}

func online(dir string) bool {
	v, err := readInt(filepath.Join(dir, "online"))
	return err == nil && v == 1
}

func batteryStatusCode(s string) int {
	switch strings.ToLower(s) {
	case "charging":
		return BatteryStatusCharging
	case "discharging":
		return BatteryStatusDischarging
	case "not charging":
		return BatteryStatusNotCharging
	case "full":
		return BatteryStatusFull
	default:
		return BatteryStatusUnknown
	}
}

func batteryHealthCode(s string) int {
	switch strings.ToLower(s) {
	case "good":
		return BatteryHealthGood
	case "overheat", "hot":
		return BatteryHealthOverheat
	case "dead":
		return BatteryHealthDead
	case "over voltage":
		return BatteryHealthOverVoltage
	case "unspecified failure":
		return BatteryHealthUnspecifiedFailure
	case "cold":
		return BatteryHealthCold
	default:
		return BatteryHealthUnknown
	}
}
