package probe

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font/sfnt"
)

// DefaultFontDirs lists the usual font locations on Unix systems.
var DefaultFontDirs = []string{
	"/usr/share/fonts",
	"/usr/local/share/fonts",
	"~/.local/share/fonts",
	"~/.fonts",
}

// Font is one face found on disk.
type Font struct {
	Family string
	Style  string
	Path   string
}

// FontScanner walks font directories and reads face names. The result is
// cached until Rescan.
type FontScanner struct {
	mu     sync.Mutex
	dirs   []string
	log    *zap.Logger
	cached []Font
	done   bool
}

// NewFontScanner returns a scanner over dirs. A leading "~" is expanded to the
// home directory.
func NewFontScanner(dirs []string, log *zap.Logger) *FontScanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &FontScanner{dirs: dirs, log: log}
}

// Fonts returns every face found, sorted by family then style.
func (s *FontScanner) Fonts() []Font {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		s.cached = s.scan()
		s.done = true
	}
	out := make([]Font, len(s.cached))
	copy(out, s.cached)
	return out
}

// Rescan drops the cache and switches to dirs.
func (s *FontScanner) Rescan(dirs []string) {
	s.mu.Lock()
	s.dirs = dirs
	s.done = false
	s.cached = nil
	s.mu.Unlock()
}

func (s *FontScanner) scan() []Font {
	var fonts []Font
	seen := make(map[string]bool)
	for _, dir := range s.dirs {
		dir = expandHome(dir)
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || seen[path] {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".ttf", ".otf", ".ttc", ".otc":
			default:
				return nil
			}
			seen[path] = true
			faces, err := readFontFile(path)
			if err != nil {
				s.log.Debug("skipping font", zap.String("path", path), zap.Error(err))
				return nil
			}
			fonts = append(fonts, faces...)
			return nil
		})
		if err != nil {
			s.log.Debug("font directory walk failed", zap.String("dir", dir), zap.Error(err))
		}
	}
	sort.Slice(fonts, func(i, j int) bool {
		if fonts[i].Family != fonts[j].Family {
			return fonts[i].Family < fonts[j].Family
		}
		if fonts[i].Style != fonts[j].Style {
			return fonts[i].Style < fonts[j].Style
		}
		return fonts[i].Path < fonts[j].Path
	})
	return fonts
}

// readFontFile returns the faces in a font file or collection.
func readFontFile(path string) ([]Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	var buf sfnt.Buffer
	faces := make([]Font, 0, coll.NumFonts())
	for i := 0; i < coll.NumFonts(); i++ {
		f, err := coll.Font(i)
		if err != nil {
			return nil, err
		}
		family, err := f.Name(&buf, sfnt.NameIDFamily)
		if err != nil {
			return nil, err
		}
		style, err := f.Name(&buf, sfnt.NameIDSubfamily)
		if err != nil {
			style = ""
		}
		faces = append(faces, Font{Family: family, Style: style, Path: path})
	}
	return faces, nil
}

// FontFamilies groups fonts by family, keeping styles in order.
func FontFamilies(fonts []Font) map[string][]string {
	families := make(map[string][]string)
	for _, f := range fonts {
		families[f.Family] = append(families[f.Family], f.Style)
	}
	return families
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
