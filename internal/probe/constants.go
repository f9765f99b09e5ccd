package probe

import (
	"net"
	"runtime"

	"github.com/five82/mobileinfo/internal/introspect"
)

// Descriptor names registered by NewRegistry.
const (
	BatteryManagerType = "BatteryManager"
	ConfigurationType  = "Configuration"
	ViewType           = "View"
	SensorType         = "Sensor"
	SensorManagerType  = "SensorManager"
	NetFlagsType       = "net.Flags"
	RuntimeType        = "runtime"
)

// Battery codes, matching Android's BatteryManager.
const (
	BatteryStatusUnknown     = 1
	BatteryStatusCharging    = 2
	BatteryStatusDischarging = 3
	BatteryStatusNotCharging = 4
	BatteryStatusFull        = 5

	BatteryHealthUnknown            = 1
	BatteryHealthGood               = 2
	BatteryHealthOverheat           = 3
	BatteryHealthDead               = 4
	BatteryHealthOverVoltage        = 5
	BatteryHealthUnspecifiedFailure = 6
	BatteryHealthCold               = 7

	BatteryPluggedAC       = 1
	BatteryPluggedUSB      = 2
	BatteryPluggedWireless = 4
	BatteryPluggedDock     = 8
)

// Configuration codes. Packed fields share an int and are split with the
// *Mask constants.
const (
	OrientationUndefined = 0
	OrientationPortrait  = 1
	OrientationLandscape = 2
	OrientationSquare    = 3

	KeyboardUndefined = 0
	KeyboardNoKeys    = 1
	KeyboardQwerty    = 2

	NavigationUndefined = 0
	NavigationNoNav     = 1
	NavigationDpad      = 2

	TouchscreenUndefined = 0
	TouchscreenNoTouch   = 1
	TouchscreenFinger    = 3

	ScreenLayoutSizeMask      = 0x0f
	ScreenLayoutSizeUndefined = 0x00
	ScreenLayoutSizeSmall     = 0x01
	ScreenLayoutSizeNormal    = 0x02
	ScreenLayoutSizeLarge     = 0x03
	ScreenLayoutSizeXLarge    = 0x04

	ScreenLayoutLongMask      = 0x30
	ScreenLayoutLongUndefined = 0x00
	ScreenLayoutLongNo        = 0x10
	ScreenLayoutLongYes       = 0x20

	ScreenLayoutLayoutDirMask      = 0xc0
	ScreenLayoutLayoutDirUndefined = 0x00
	ScreenLayoutLayoutDirLTR       = 0x40
	ScreenLayoutLayoutDirRTL       = 0x80

	ScreenLayoutRoundMask      = 0x300
	ScreenLayoutRoundUndefined = 0x000
	ScreenLayoutRoundNo        = 0x100
	ScreenLayoutRoundYes       = 0x200

	UIModeTypeMask       = 0x0f
	UIModeTypeUndefined  = 0x00
	UIModeTypeNormal     = 0x01
	UIModeTypeDesk       = 0x02
	UIModeTypeTelevision = 0x04
	UIModeTypeAppliance  = 0x05

	UIModeNightMask      = 0x30
	UIModeNightUndefined = 0x00
	UIModeNightNo        = 0x10
	UIModeNightYes       = 0x20

	ColorModeWideColorGamutMask      = 0x03
	ColorModeWideColorGamutUndefined = 0x00
	ColorModeWideColorGamutNo        = 0x01
	ColorModeWideColorGamutYes       = 0x02

	ColorModeHDRMask      = 0x0c
	ColorModeHDRUndefined = 0x00
	ColorModeHDRNo        = 0x04
	ColorModeHDRYes       = 0x08

	LayoutDirectionLTR = 0
	LayoutDirectionRTL = 1
)

// Sensor types, matching Android's Sensor.TYPE_* values.
const (
	SensorTypeAccelerometer      = 1
	SensorTypeMagneticField      = 2
	SensorTypeGyroscope          = 4
	SensorTypeLight              = 5
	SensorTypePressure           = 6
	SensorTypeProximity          = 8
	SensorTypeRelativeHumidity   = 12
	SensorTypeAmbientTemperature = 13
)

// NewRegistry returns a registry holding every descriptor the screens use.
func NewRegistry() *introspect.Registry {
	return introspect.NewRegistry(
		batteryManager(),
		configuration(),
		view(),
		sensor(),
		sensorManager(),
		netFlags(),
		runtimeInfo(),
	)
}

func batteryManager() introspect.TypeDescriptor {
	c := introspect.Const
	return introspect.TypeDescriptor{Name: BatteryManagerType, Constants: []introspect.Constant{
		c("BATTERY_HEALTH_COLD", BatteryHealthCold),
		c("BATTERY_HEALTH_DEAD", BatteryHealthDead),
		c("BATTERY_HEALTH_GOOD", BatteryHealthGood),
		c("BATTERY_HEALTH_OVERHEAT", BatteryHealthOverheat),
		c("BATTERY_HEALTH_OVER_VOLTAGE", BatteryHealthOverVoltage),
		c("BATTERY_HEALTH_UNKNOWN", BatteryHealthUnknown),
		c("BATTERY_HEALTH_UNSPECIFIED_FAILURE", BatteryHealthUnspecifiedFailure),
		c("BATTERY_PLUGGED_AC", BatteryPluggedAC),
		c("BATTERY_PLUGGED_DOCK", BatteryPluggedDock),
		c("BATTERY_PLUGGED_USB", BatteryPluggedUSB),
		c("BATTERY_PLUGGED_WIRELESS", BatteryPluggedWireless),
		c("BATTERY_STATUS_CHARGING", BatteryStatusCharging),
		c("BATTERY_STATUS_DISCHARGING", BatteryStatusDischarging),
		c("BATTERY_STATUS_FULL", BatteryStatusFull),
		c("BATTERY_STATUS_NOT_CHARGING", BatteryStatusNotCharging),
		c("BATTERY_STATUS_UNKNOWN", BatteryStatusUnknown),
		c("EXTRA_HEALTH", "health"),
		c("EXTRA_LEVEL", "level"),
		c("EXTRA_PLUGGED", "plugged"),
		c("EXTRA_PRESENT", "present"),
		c("EXTRA_SCALE", "scale"),
		c("EXTRA_STATUS", "status"),
		c("EXTRA_TECHNOLOGY", "technology"),
		c("EXTRA_TEMPERATURE", "temperature"),
		c("EXTRA_VOLTAGE", "voltage"),
	}}
}

func configuration() introspect.TypeDescriptor {
	c := introspect.Const
	return introspect.TypeDescriptor{Name: ConfigurationType, Constants: []introspect.Constant{
		c("COLOR_MODE_HDR_MASK", ColorModeHDRMask),
		c("COLOR_MODE_HDR_NO", ColorModeHDRNo),
		c("COLOR_MODE_HDR_UNDEFINED", ColorModeHDRUndefined),
		c("COLOR_MODE_HDR_YES", ColorModeHDRYes),
		c("COLOR_MODE_WIDE_COLOR_GAMUT_MASK", ColorModeWideColorGamutMask),
		c("COLOR_MODE_WIDE_COLOR_GAMUT_NO", ColorModeWideColorGamutNo),
		c("COLOR_MODE_WIDE_COLOR_GAMUT_UNDEFINED", ColorModeWideColorGamutUndefined),
		c("COLOR_MODE_WIDE_COLOR_GAMUT_YES", ColorModeWideColorGamutYes),
		c("KEYBOARD_NOKEYS", KeyboardNoKeys),
		c("KEYBOARD_QWERTY", KeyboardQwerty),
		c("KEYBOARD_UNDEFINED", KeyboardUndefined),
		c("NAVIGATION_DPAD", NavigationDpad),
		c("NAVIGATION_NONAV", NavigationNoNav),
		c("NAVIGATION_UNDEFINED", NavigationUndefined),
		c("ORIENTATION_LANDSCAPE", OrientationLandscape),
		c("ORIENTATION_PORTRAIT", OrientationPortrait),
		c("ORIENTATION_SQUARE", OrientationSquare),
		c("ORIENTATION_UNDEFINED", OrientationUndefined),
		c("SCREENLAYOUT_LAYOUTDIR_LTR", ScreenLayoutLayoutDirLTR),
		c("SCREENLAYOUT_LAYOUTDIR_MASK", ScreenLayoutLayoutDirMask),
		c("SCREENLAYOUT_LAYOUTDIR_RTL", ScreenLayoutLayoutDirRTL),
		c("SCREENLAYOUT_LAYOUTDIR_UNDEFINED", ScreenLayoutLayoutDirUndefined),
		c("SCREENLAYOUT_LONG_MASK", ScreenLayoutLongMask),
		c("SCREENLAYOUT_LONG_NO", ScreenLayoutLongNo),
		c("SCREENLAYOUT_LONG_UNDEFINED", ScreenLayoutLongUndefined),
		c("SCREENLAYOUT_LONG_YES", ScreenLayoutLongYes),
		c("SCREENLAYOUT_ROUND_MASK", ScreenLayoutRoundMask),
		c("SCREENLAYOUT_ROUND_NO", ScreenLayoutRoundNo),
		c("SCREENLAYOUT_ROUND_UNDEFINED", ScreenLayoutRoundUndefined),
		c("SCREENLAYOUT_ROUND_YES", ScreenLayoutRoundYes),
		c("SCREENLAYOUT_SIZE_LARGE", ScreenLayoutSizeLarge),
		c("SCREENLAYOUT_SIZE_MASK", ScreenLayoutSizeMask),
		c("SCREENLAYOUT_SIZE_NORMAL", ScreenLayoutSizeNormal),
		c("SCREENLAYOUT_SIZE_SMALL", ScreenLayoutSizeSmall),
		c("SCREENLAYOUT_SIZE_UNDEFINED", ScreenLayoutSizeUndefined),
		c("SCREENLAYOUT_SIZE_XLARGE", ScreenLayoutSizeXLarge),
		c("TOUCHSCREEN_FINGER", TouchscreenFinger),
		c("TOUCHSCREEN_NOTOUCH", TouchscreenNoTouch),
		c("TOUCHSCREEN_UNDEFINED", TouchscreenUndefined),
		c("UI_MODE_NIGHT_MASK", UIModeNightMask),
		c("UI_MODE_NIGHT_NO", UIModeNightNo),
		c("UI_MODE_NIGHT_UNDEFINED", UIModeNightUndefined),
		c("UI_MODE_NIGHT_YES", UIModeNightYes),
		c("UI_MODE_TYPE_APPLIANCE", UIModeTypeAppliance),
		c("UI_MODE_TYPE_DESK", UIModeTypeDesk),
		c("UI_MODE_TYPE_MASK", UIModeTypeMask),
		c("UI_MODE_TYPE_NORMAL", UIModeTypeNormal),
		c("UI_MODE_TYPE_TELEVISION", UIModeTypeTelevision),
		c("UI_MODE_TYPE_UNDEFINED", UIModeTypeUndefined),
	}}
}

func view() introspect.TypeDescriptor {
	return introspect.TypeDescriptor{Name: ViewType, Constants: []introspect.Constant{
		introspect.Const("LAYOUT_DIRECTION_LTR", LayoutDirectionLTR),
		introspect.Const("LAYOUT_DIRECTION_RTL", LayoutDirectionRTL),
	}}
}

func sensor() introspect.TypeDescriptor {
	c := introspect.Const
	return introspect.TypeDescriptor{Name: SensorType, Constants: []introspect.Constant{
		c("TYPE_ACCELEROMETER", SensorTypeAccelerometer),
		c("TYPE_AMBIENT_TEMPERATURE", SensorTypeAmbientTemperature),
		c("TYPE_GYROSCOPE", SensorTypeGyroscope),
		c("TYPE_LIGHT", SensorTypeLight),
		c("TYPE_MAGNETIC_FIELD", SensorTypeMagneticField),
		c("TYPE_PRESSURE", SensorTypePressure),
		c("TYPE_PROXIMITY", SensorTypeProximity),
		c("TYPE_RELATIVE_HUMIDITY", SensorTypeRelativeHumidity),
	}}
}

func sensorManager() introspect.TypeDescriptor {
	c := introspect.Const
	return introspect.TypeDescriptor{Name: SensorManagerType, Constants: []introspect.Constant{
		c("GRAVITY_DEATH_STAR_I", float32(3.5303614e-7)),
		c("GRAVITY_EARTH", float32(9.80665)),
		c("GRAVITY_JUPITER", float32(23.12)),
		c("GRAVITY_MARS", float32(3.71)),
		c("GRAVITY_MERCURY", float32(3.7)),
		c("GRAVITY_MOON", float32(1.6)),
		c("GRAVITY_NEPTUNE", float32(11.0)),
		c("GRAVITY_PLUTO", float32(0.6)),
		c("GRAVITY_SATURN", float32(8.96)),
		c("GRAVITY_SUN", float32(275.0)),
		c("GRAVITY_THE_ISLAND", float32(4.815162)),
		c("GRAVITY_URANUS", float32(8.69)),
		c("GRAVITY_VENUS", float32(8.87)),
		c("LIGHT_CLOUDY", float32(100)),
		c("LIGHT_FULLMOON", float32(0.25)),
		c("LIGHT_NO_MOON", float32(0.001)),
		c("LIGHT_OVERCAST", float32(10000)),
		c("LIGHT_SHADE", float32(20000)),
		c("LIGHT_SUNLIGHT", float32(110000)),
		c("LIGHT_SUNLIGHT_MAX", float32(120000)),
		c("LIGHT_SUNRISE", float32(400)),
		c("STANDARD_GRAVITY", float32(9.80665)),
	}}
}

func netFlags() introspect.TypeDescriptor {
	c := introspect.Const
	return introspect.TypeDescriptor{Name: NetFlagsType, Constants: []introspect.Constant{
		c("FlagUp", net.FlagUp),
		c("FlagBroadcast", net.FlagBroadcast),
		c("FlagLoopback", net.FlagLoopback),
		c("FlagPointToPoint", net.FlagPointToPoint),
		c("FlagMulticast", net.FlagMulticast),
		c("FlagRunning", net.FlagRunning),
	}}
}

func runtimeInfo() introspect.TypeDescriptor {
	c := introspect.Const
	return introspect.TypeDescriptor{Name: RuntimeType, Constants: []introspect.Constant{
		c("Compiler", runtime.Compiler),
		c("GOARCH", runtime.GOARCH),
		c("GOOS", runtime.GOOS),
		c("Version", runtime.Version()),
	}}
}
