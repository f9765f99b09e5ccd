package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestResolveLevel(t *testing.T) {
	t.Setenv(LevelEnvVar, "")
	if got := ResolveLevel(" Info "); got != "info" {
		t.Fatalf("ResolveLevel = %q, want info", got)
	}
	if got := ResolveLevel(""); got != "" {
		t.Fatalf("ResolveLevel(empty) = %q, want empty", got)
	}

	t.Setenv(LevelEnvVar, "DEBUG")
	if got := ResolveLevel("error"); got != "debug" {
		t.Fatalf("env should win: got %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"loud":    zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_SilentWithoutLevel(t *testing.T) {
	logger, err := New("", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("silent logger should not be enabled")
	}
}

func TestNew_RequiresFile(t *testing.T) {
	if _, err := New("info", ""); err == nil {
		t.Fatalf("expected an error without a log file")
	}
}

func TestNew_WritesConsoleLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mobileinfo.log")
	logger, err := New("warn", path)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("accessor failed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %q", out)
	}
	fields := strings.Split(strings.TrimSpace(out), "\t")
	if len(fields) < 3 || fields[1] != "WARN" || fields[len(fields)-1] != "accessor failed" {
		t.Fatalf("unexpected line %q", out)
	}
}
