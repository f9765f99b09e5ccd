// Package probe gathers the runtime state shown by the screens.
//
// Each reader works from an injectable root so it can be pointed at a fake
// sysfs tree: BatteryReader (power_supply), SensorReader (hwmon and IIO),
// NetworkReader (interfaces and /proc/net/dev) and FontScanner (font
// directories parsed with sfnt). ReadConfiguration describes the terminal as
// a device configuration, and ReadSystem reports process, kernel and build
// details.
//
// Values are expressed with the integer codes of the platform APIs they stand
// in for (BatteryStatusCharging, OrientationLandscape, ...). NewRegistry
// returns the matching constant descriptors so the screens can turn codes
// back into names.
//
// Collector runs every probe and returns a Snapshot. A probe failure is
// recorded in Snapshot.Errors and leaves that section empty.
package probe
