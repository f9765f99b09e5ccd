package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/five82/mobileinfo/internal/config"
	"github.com/five82/mobileinfo/internal/probe"
	"github.com/five82/mobileinfo/internal/screens"
)

func testEnvironment(t *testing.T, cfg config.Config) *Environment {
	t.Helper()
	root := t.TempDir()
	supply := filepath.Join(root, "power_supply", "BAT0")
	if err := os.MkdirAll(supply, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	for name, content := range map[string]string{
		"type":     "Battery\n",
		"present":  "1\n",
		"status":   "Full\n",
		"capacity": "100\n",
	} {
		if err := os.WriteFile(filepath.Join(supply, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return NewEnvironment(cfg, nil, probe.Options{
		FontDirs:        []string{filepath.Join(root, "fonts")},
		PowerSupplyPath: filepath.Join(root, "power_supply"),
		ProcNetDevPath:  filepath.Join(root, "net_dev"),
		HwmonPath:       filepath.Join(root, "hwmon"),
		IIOPath:         filepath.Join(root, "iio"),
		Permissions:     []probe.PermissionSpec{},
		Terminal:        func() probe.Terminal { return probe.Terminal{Columns: 100, Rows: 30} },
		Getenv:          func(string) string { return "" },
		Environ:         func() []string { return []string{"HOME=/home/u"} },
	})
}

func TestDump_Text(t *testing.T) {
	env := testEnvironment(t, config.Default())

	var buf bytes.Buffer
	err := Dump(context.Background(), &buf, env, DumpOptions{Screens: []screens.ID{screens.Home, screens.Logs}})
	if err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"== Home ==", "Battery", "Status", "Full", "HOME", "== Logs ==", "not configured"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "== Network ==") {
		t.Errorf("unrequested screen dumped")
	}
}

func TestDump_YAML(t *testing.T) {
	cfg := config.Default()
	cfg.HiddenScreens = []string{"logs"}
	env := testEnvironment(t, cfg)

	var buf bytes.Buffer
	if err := Dump(context.Background(), &buf, env, DumpOptions{Format: "YAML"}); err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}

	var got []dumpScreen
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	if len(got) != len(screens.All)-1 {
		t.Fatalf("got %d screens, want %d (logs hidden)", len(got), len(screens.All)-1)
	}
	if got[0].Screen != "home" || len(got[0].Rows) == 0 {
		t.Fatalf("first screen = %+v", got[0])
	}
	var status string
	for _, r := range got[0].Rows {
		if r.ID == "battery/BAT0/Status" {
			status = r.Value
		}
	}
	if status != "Full" {
		t.Fatalf("battery status = %q, want Full", status)
	}
}

func TestDump_UnknownFormat(t *testing.T) {
	env := testEnvironment(t, config.Default())
	err := Dump(context.Background(), &bytes.Buffer{}, env, DumpOptions{Format: "xml"})
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("Dump error = %v", err)
	}
}

func TestEnvironment_ScreensRespectHidden(t *testing.T) {
	cfg := config.Default()
	cfg.HiddenScreens = []string{"fonts", "sensors"}
	env := NewEnvironment(cfg, nil, probe.Options{})
	got := env.Screens()
	want := []screens.ID{screens.Home, screens.Network, screens.Logs}
	if len(got) != len(want) {
		t.Fatalf("Screens = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Screens = %v, want %v", got, want)
		}
	}
	if env.LogPath() != "" {
		t.Fatalf("LogPath should be empty when logging is off")
	}
}
