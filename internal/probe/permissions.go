package probe

import (
	"golang.org/x/sys/unix"
)

// Permission outcomes.
const (
	Granted = "GRANTED"
	Denied  = "DENIED"
)

// Access modes checked for a permission.
const (
	AccessRead  = unix.R_OK
	AccessWrite = unix.W_OK
)

// PermissionSpec maps a named capability to the path that grants it.
type PermissionSpec struct {
	Name string
	Path string
	Mode uint32
}

// Permission is the outcome of checking one PermissionSpec.
type Permission struct {
	Name   string
	Path   string
	Result string
}

// DefaultPermissions are the capabilities the Home screen reports.
var DefaultPermissions = []PermissionSpec{
	{Name: "ACCESS_NETWORK_STATE", Path: DefaultProcNetDevPath, Mode: AccessRead},
	{Name: "BATTERY_STATS", Path: DefaultPowerSupplyPath, Mode: AccessRead},
	{Name: "BODY_SENSORS", Path: DefaultIIOPath, Mode: AccessRead},
	{Name: "CAMERA", Path: "/dev/video0", Mode: AccessRead | AccessWrite},
	{Name: "INPUT_DEVICES", Path: "/dev/input", Mode: AccessRead},
	{Name: "READ_LOGS", Path: "/var/log", Mode: AccessRead},
	{Name: "RECORD_AUDIO", Path: "/dev/snd", Mode: AccessRead},
	{Name: "WRITE_SETTINGS", Path: "/etc", Mode: AccessWrite},
}

// PermissionChecker evaluates PermissionSpecs with access(2).
type PermissionChecker struct {
	specs  []PermissionSpec
	access func(path string, mode uint32) error
}

// NewPermissionChecker returns a checker for specs.
func NewPermissionChecker(specs []PermissionSpec) *PermissionChecker {
	return &PermissionChecker{specs: specs, access: unix.Access}
}

// Check returns one Permission per spec, in spec order.
func (c *PermissionChecker) Check() []Permission {
	out := make([]Permission, len(c.specs))
	for i, spec := range c.specs {
		result := Granted
		if err := c.access(spec.Path, spec.Mode); err != nil {
			result = Denied
		}
		out[i] = Permission{Name: spec.Name, Path: spec.Path, Result: result}
	}
	return out
}
