package probe

import (
	"os"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
)

// Kernel is the uname of the running kernel.
type Kernel struct {
	Sysname  string
	Nodename string
	Release  string
	Version  string
	Machine  string
}

// BuildSetting is one key of the binary's embedded build information.
type BuildSetting struct {
	Key   string
	Value string
}

// System holds process and platform details.
type System struct {
	NumCPU      int
	GoVersion   string
	Hostname    string
	PID         int
	UID         int
	Executable  string
	Kernel      Kernel
	MainModule  string
	Build       []BuildSetting
	Environment map[string]string
}

// ReadSystem collects System. environ supplies "KEY=value" pairs; nil uses
// os.Environ.
func ReadSystem(environ func() []string) System {
	if environ == nil {
		environ = os.Environ
	}
	s := System{
		NumCPU:      runtime.NumCPU(),
		GoVersion:   runtime.Version(),
		PID:         os.Getpid(),
		UID:         os.Getuid(),
		Kernel:      uname(),
		Environment: parseEnviron(environ()),
	}
	s.Hostname, _ = os.Hostname()
	s.Executable, _ = os.Executable()

	if info, ok := debug.ReadBuildInfo(); ok {
		s.MainModule = info.Main.Path
		if info.Main.Version != "" {
			s.MainModule += "@" + info.Main.Version
		}
		for _, setting := range info.Settings {
			s.Build = append(s.Build, BuildSetting{Key: setting.Key, Value: setting.Value})
		}
		sort.Slice(s.Build, func(i, j int) bool { return s.Build[i].Key < s.Build[j].Key })
	}
	return s
}

func parseEnviron(pairs []string) map[string]string {
	env := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}
