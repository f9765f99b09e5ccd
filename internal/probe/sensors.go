package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Default sysfs roots for sensors.
const (
	DefaultHwmonPath = "/sys/class/hwmon"
	DefaultIIOPath   = "/sys/bus/iio/devices"
)

// Sensor is one reading from a hardware sensor. Type holds a SensorType* code.
type Sensor struct {
	Name   string
	Vendor string
	Type   int
	Values []float64
	Unit   string
	Source string
}

// SensorReader reads hwmon temperatures and IIO sensors.
type SensorReader struct {
	mu    sync.Mutex
	hwmon string
	iio   string
}

// NewSensorReader returns a reader over the given roots. Empty roots use the
// system paths.
func NewSensorReader(hwmonRoot, iioRoot string) *SensorReader {
	if hwmonRoot == "" {
		hwmonRoot = DefaultHwmonPath
	}
	if iioRoot == "" {
		iioRoot = DefaultIIOPath
	}
	return &SensorReader{hwmon: hwmonRoot, iio: iioRoot}
}

// Read returns every sensor found, ordered by type then name. Missing roots
// contribute nothing.
func (r *SensorReader) Read() ([]Sensor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hw, err := r.readHwmon()
	if err != nil {
		return nil, err
	}
	iio, err := r.readIIO()
	if err != nil {
		return nil, err
	}
	sensors := append(hw, iio...)
	sort.SliceStable(sensors, func(i, j int) bool {
		if sensors[i].Type != sensors[j].Type {
			return sensors[i].Type < sensors[j].Type
		}
		return sensors[i].Name < sensors[j].Name
	})
	return sensors, nil
}

func (r *SensorReader) readHwmon() ([]Sensor, error) {
	entries, err := os.ReadDir(r.hwmon)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.hwmon, err)
	}

	var out []Sensor
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "hwmon") {
			continue
		}
		dir := filepath.Join(r.hwmon, entry.Name())
		device, err := readString(filepath.Join(dir, "name"))
		if err != nil {
			device = entry.Name()
		}
		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, f := range files {
			name := f.Name()
			if !strings.HasPrefix(name, "temp") || !strings.HasSuffix(name, "_input") {
				continue
			}
			milli, err := readInt(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			channel := strings.TrimSuffix(name, "_input")
			label, err := readString(filepath.Join(dir, channel+"_label"))
			if err != nil {
				label = channel
			}
			out = append(out, Sensor{
				Name:   device + " " + label,
				Vendor: device,
				Type:   SensorTypeAmbientTemperature,
				Values: []float64{float64(milli) / 1000},
				Unit:   "°C",
				Source: filepath.Join(dir, name),
			})
		}
	}
	return out, nil
}

type iioChannel struct {
	prefix string
	typ    int
	unit   string
	factor float64
	axes   bool
}

var iioChannels = []iioChannel{
	{prefix: "in_accel", typ: SensorTypeAccelerometer, unit: "m/s²", factor: 1, axes: true},
	{prefix: "in_anglvel", typ: SensorTypeGyroscope, unit: "rad/s", factor: 1, axes: true},
	{prefix: "in_magn", typ: SensorTypeMagneticField, unit: "µT", factor: 100, axes: true},
	{prefix: "in_illuminance", typ: SensorTypeLight, unit: "lx", factor: 1},
	{prefix: "in_pressure", typ: SensorTypePressure, unit: "hPa", factor: 10},
	{prefix: "in_humidityrelative", typ: SensorTypeRelativeHumidity, unit: "%", factor: 0.001},
	{prefix: "in_proximity", typ: SensorTypeProximity, unit: "", factor: 1},
	{prefix: "in_temp", typ: SensorTypeAmbientTemperature, unit: "°C", factor: 0.001},
}

func (r *SensorReader) readIIO() ([]Sensor, error) {
	entries, err := os.ReadDir(r.iio)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.iio, err)
	}

	var out []Sensor
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "iio:device") {
			continue
		}
		dir := filepath.Join(r.iio, entry.Name())
		device, err := readString(filepath.Join(dir, "name"))
		if err != nil {
			device = entry.Name()
		}
		for _, ch := range iioChannels {
			var values []float64
			if ch.axes {
				values = readAxes(dir, ch.prefix)
			} else if v, ok := readChannel(dir, ch.prefix); ok {
				values = []float64{v}
			}
			if len(values) == 0 {
				continue
			}
			for i := range values {
				values[i] *= ch.factor
			}
			out = append(out, Sensor{
				Name:   device,
				Vendor: entry.Name(),
				Type:   ch.typ,
				Values: values,
				Unit:   ch.unit,
				Source: dir,
			})
		}
	}
	return out, nil
}

// readChannel returns prefix_input, or prefix_raw scaled by prefix_scale.
func readChannel(dir, prefix string) (float64, bool) {
	if v, err := readFloat(filepath.Join(dir, prefix+"_input")); err == nil {
		return v, true
	}
	raw, err := readFloat(filepath.Join(dir, prefix+"_raw"))
	if err != nil {
		return 0, false
	}
	return raw * scaleOf(dir, prefix), true
}

// readAxes returns the x, y and z values of a vector channel.
func readAxes(dir, prefix string) []float64 {
	shared := scaleOf(dir, prefix)
	values := make([]float64, 0, 3)
	for _, axis := range []string{"x", "y", "z"} {
		name := prefix + "_" + axis
		raw, err := readFloat(filepath.Join(dir, name+"_raw"))
		if err != nil {
			return nil
		}
		scale := shared
		if s, err := readFloat(filepath.Join(dir, name+"_scale")); err == nil {
			scale = s
		}
		values = append(values, raw*scale)
	}
	return values
}

func scaleOf(dir, prefix string) float64 {
	if s, err := readFloat(filepath.Join(dir, prefix+"_scale")); err == nil {
		return s
	}
	return 1
}
