package probe

import (
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"golang.org/x/text/language"
)

// Terminal describes the terminal the program is attached to.
type Terminal struct {
	Columns     int
	Rows        int
	Interactive bool
	Dark        bool
}

// DetectTerminal inspects fd, including the background colour. The colour
// query talks to the terminal, so it must not run while a TUI owns stdin.
func DetectTerminal(fd int) Terminal {
	t := terminalSize(fd)
	if t.Interactive {
		t.Dark = lipgloss.HasDarkBackground()
	}
	return t
}

// terminalSize is DetectTerminal without the background query.
func terminalSize(fd int) Terminal {
	if !term.IsTerminal(fd) {
		return Terminal{}
	}
	t := Terminal{Interactive: true}
	if w, h, err := term.GetSize(fd); err == nil {
		t.Columns, t.Rows = w, h
	}
	return t
}

// Configuration is the terminal seen as a device configuration. ScreenLayout,
// UIMode and ColorMode are packed; split them with the *Mask constants.
type Configuration struct {
	Orientation    int
	ScreenLayout   int
	UIMode         int
	ColorMode      int
	Keyboard       int
	Navigation     int
	Touchscreen    int
	ScreenWidthDp  int
	ScreenHeightDp int
	FontScale      float64
	Locale         string
}

// LayoutDirection returns LayoutDirectionRTL for right-to-left locales.
func (c Configuration) LayoutDirection() int {
	if c.ScreenLayout&ScreenLayoutLayoutDirMask == ScreenLayoutLayoutDirRTL {
		return LayoutDirectionRTL
	}
	return LayoutDirectionLTR
}

func (c Configuration) IsScreenRound() bool {
	return c.ScreenLayout&ScreenLayoutRoundMask == ScreenLayoutRoundYes
}

func (c Configuration) IsScreenWideColorGamut() bool {
	return c.ColorMode&ColorModeWideColorGamutMask == ColorModeWideColorGamutYes
}

func (c Configuration) IsScreenHdr() bool {
	return c.ColorMode&ColorModeHDRMask == ColorModeHDRYes
}

func (c Configuration) IsNightModeActive() bool {
	return c.UIMode&UIModeNightMask == UIModeNightYes
}

var rtlLanguages = []string{"ar", "ckb", "dv", "fa", "he", "ps", "sd", "ug", "ur", "yi"}

// ReadConfiguration derives a Configuration from t and the environment read
// through getenv. A nil getenv uses os.Getenv.
func ReadConfiguration(t Terminal, getenv func(string) string) Configuration {
	if getenv == nil {
		getenv = os.Getenv
	}
	tag := parseLocale(getenv)
	base, _ := tag.Base()

	c := Configuration{
		ScreenWidthDp:  t.Columns,
		ScreenHeightDp: t.Rows,
		FontScale:      1,
		Locale:         tag.String(),
		Touchscreen:    TouchscreenNoTouch,
	}

	switch {
	case t.Columns == 0 || t.Rows == 0:
		c.Orientation = OrientationUndefined
	case t.Columns > 2*t.Rows:
		c.Orientation = OrientationLandscape
	case t.Columns < 2*t.Rows:
		c.Orientation = OrientationPortrait
	default:
		c.Orientation = OrientationSquare
	}

	c.ScreenLayout = screenSize(t.Columns) | ScreenLayoutRoundNo
	switch {
	case t.Rows == 0:
	case t.Columns >= 4*t.Rows:
		c.ScreenLayout |= ScreenLayoutLongYes
	default:
		c.ScreenLayout |= ScreenLayoutLongNo
	}
	if slices.Contains(rtlLanguages, base.String()) {
		c.ScreenLayout |= ScreenLayoutLayoutDirRTL
	} else {
		c.ScreenLayout |= ScreenLayoutLayoutDirLTR
	}

	if t.Interactive {
		c.Keyboard = KeyboardQwerty
		c.Navigation = NavigationDpad
		c.UIMode = UIModeTypeNormal
		if getenv("TERM") == "linux" {
			c.UIMode = UIModeTypeAppliance
		}
		if t.Dark {
			c.UIMode |= UIModeNightYes
		} else {
			c.UIMode |= UIModeNightNo
		}
	} else {
		c.Keyboard = KeyboardNoKeys
		c.Navigation = NavigationNoNav
	}

	switch strings.ToLower(getenv("COLORTERM")) {
	case "truecolor", "24bit":
		c.ColorMode = ColorModeWideColorGamutYes
	default:
		c.ColorMode = ColorModeWideColorGamutNo
	}
	c.ColorMode |= ColorModeHDRNo
	return c
}

func screenSize(columns int) int {
	switch {
	case columns <= 0:
		return ScreenLayoutSizeUndefined
	case columns < 80:
		return ScreenLayoutSizeSmall
	case columns < 120:
		return ScreenLayoutSizeNormal
	case columns < 200:
		return ScreenLayoutSizeLarge
	default:
		return ScreenLayoutSizeXLarge
	}
}

// parseLocale reads the POSIX locale variables in priority order.
func parseLocale(getenv func(string) string) language.Tag {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := getenv(key)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "C" || v == "POSIX" {
			return language.Und
		}
		tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
		if err != nil {
			return language.Und
		}
		return tag
	}
	return language.Und
}
