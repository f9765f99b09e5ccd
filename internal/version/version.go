// Package version reports the build's version and commit.
package version

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/five82/mobileinfo/internal/version.Version=v0.3.0"
var (
	Version = ""
	Commit  = ""
)

var resolveOnce sync.Once

func resolve() {
	resolveOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if ok {
			fillFromSettings(info.Main.Version, info.Settings)
		}
		if Version == "" {
			Version = "dev"
		}
		if Commit == "" {
			Commit = "unknown"
		}
	})
}

func fillFromSettings(moduleVersion string, settings []debug.BuildSetting) {
	if Version == "" && moduleVersion != "" && moduleVersion != "(devel)" {
		Version = moduleVersion
	}
	if Commit != "" {
		return
	}
	var revision string
	var modified bool
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if revision == "" {
		return
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	Commit = revision
	if modified {
		Commit += "-dirty"
	}
}

// Full returns the version including the commit.
func Full() string {
	resolve()
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
