package probe

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestFontScanner_ReadsFaceNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "truetype", "go"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string][]byte{
		"truetype/go/Go-Regular.ttf": goregular.TTF,
		"truetype/go/Go-Bold.TTF":    gobold.TTF,
		"truetype/go/broken.otf":     []byte("not a font"),
		"truetype/go/readme.txt":     []byte("ignored"),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s := NewFontScanner([]string{dir, filepath.Join(dir, "missing")}, nil)
	fonts := s.Fonts()
	if len(fonts) != 2 {
		t.Fatalf("fonts = %+v, want 2", fonts)
	}
	if fonts[0].Family != "Go" || fonts[0].Style != "Bold" || fonts[1].Style != "Regular" {
		t.Fatalf("fonts = %+v", fonts)
	}

	families := FontFamilies(fonts)
	if len(families["Go"]) != 2 {
		t.Fatalf("families = %v", families)
	}
}

func TestFontScanner_CachesUntilRescan(t *testing.T) {
	dir := t.TempDir()
	s := NewFontScanner([]string{dir}, nil)
	if got := s.Fonts(); len(got) != 0 {
		t.Fatalf("fonts = %v, want none", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "Go.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := s.Fonts(); len(got) != 0 {
		t.Fatalf("cached fonts = %v, want none", got)
	}

	s.Rescan([]string{dir})
	if got := s.Fonts(); len(got) != 1 {
		t.Fatalf("fonts after rescan = %v, want 1", got)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := expandHome("~/.fonts"); got != "/home/tester/.fonts" {
		t.Fatalf("expandHome = %q", got)
	}
	if got := expandHome("/usr/share/fonts"); got != "/usr/share/fonts" {
		t.Fatalf("expandHome = %q", got)
	}
}
