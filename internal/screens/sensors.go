package screens

import (
	"math"
	"strconv"
	"strings"

	"github.com/five82/mobileinfo/internal/probe"
	"github.com/five82/mobileinfo/internal/rows"
)

// Sensors lists every sensor reading. Accelerometer magnitudes are named after
// the nearest gravity constant and illuminance after the nearest light level.
func (b *Builder) Sensors(s probe.Snapshot) []rows.Row {
	out := []rows.Row{rows.Header{ID: "sensors", Text: "Sensors"}}
	out = errorRow(out, s, probe.ProbeSensors)
	if len(s.Sensors) == 0 && s.Errors[probe.ProbeSensors] == "" {
		return append(out, rows.KeyValue{ID: "sensors/none", Key: "Sensors", Value: "none found"})
	}
	for _, sensor := range s.Sensors {
		prefix := "sensor/" + sensor.Source
		out = append(out,
			rows.KeyValue{ID: prefix, Key: sensor.Name, Value: b.reading(sensor)},
			rows.Grid{ID: prefix + "/info", Pairs: []rows.Pair{
				{Key: "Type", Value: constantLabel(b.in.FindConstantName(probe.SensorType, sensor.Type, "^TYPE_(.*)$"))},
				{Key: "Vendor", Value: sensor.Vendor},
			}},
		)
	}
	return out
}

func (b *Builder) reading(s probe.Sensor) string {
	if len(s.Values) == 0 {
		return ""
	}
	if s.Type == probe.SensorTypeProximity {
		if s.Values[0] == 0 {
			return "Near"
		}
		return "Far"
	}

	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		parts[i] = strconv.FormatFloat(v, 'f', 2, 64)
	}
	text := strings.Join(parts, ", ")
	if s.Unit != "" {
		text += " " + s.Unit
	}

	var nearest string
	switch s.Type {
	case probe.SensorTypeAccelerometer:
		nearest = b.in.NearestConstant(probe.SensorManagerType, magnitude(s.Values), "^GRAVITY_(.*)$")
	case probe.SensorTypeLight:
		nearest = b.in.NearestConstant(probe.SensorManagerType, s.Values[0], "^LIGHT_(.*)$")
	}
	if nearest != "" {
		text += " (" + constantLabel(nearest) + ")"
	}
	return text
}

func magnitude(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v * v
	}
	return math.Sqrt(sum)
}
