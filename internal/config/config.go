package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the user-tunable settings of mobileinfo.
type Config struct {
	PollInterval  time.Duration
	LogFile       string
	LogLevel      string
	LogLines      int
	FontDirs      []string
	HiddenScreens []string
	KeyWidth      int
}

const (
	defaultConfigPath   = "~/.config/mobileinfo/config.toml"
	defaultLogFile      = "~/.local/state/mobileinfo/mobileinfo.log"
	defaultPollInterval = 2 * time.Second
	defaultLogLines     = 400
	defaultKeyWidth     = 24
	minPollInterval     = 250 * time.Millisecond
)

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		PollInterval: defaultPollInterval,
		LogFile:      mustExpand(defaultLogFile),
		LogLines:     defaultLogLines,
		KeyWidth:     defaultKeyWidth,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		PollInterval  string   `toml:"poll_interval"`
		LogFile       string   `toml:"log_file"`
		LogLevel      string   `toml:"log_level"`
		LogLines      int      `toml:"log_lines"`
		FontDirs      []string `toml:"font_dirs"`
		HiddenScreens []string `toml:"hidden_screens"`
		KeyWidth      int      `toml:"key_width"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if s := strings.TrimSpace(raw.PollInterval); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return Config{}, fmt.Errorf("parse poll_interval: %w", err)
		}
		cfg.PollInterval = max(d, minPollInterval)
	}
	if s := strings.TrimSpace(raw.LogFile); s != "" {
		cfg.LogFile = mustExpand(s)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	if raw.LogLines > 0 {
		cfg.LogLines = raw.LogLines
	}
	if raw.KeyWidth > 0 {
		cfg.KeyWidth = raw.KeyWidth
	}
	for _, dir := range raw.FontDirs {
		if dir = strings.TrimSpace(dir); dir != "" {
			cfg.FontDirs = append(cfg.FontDirs, mustExpand(dir))
		}
	}
	for _, screen := range raw.HiddenScreens {
		if screen = strings.ToLower(strings.TrimSpace(screen)); screen != "" {
			cfg.HiddenScreens = append(cfg.HiddenScreens, screen)
		}
	}

	return cfg, nil
}

// Hidden reports whether the screen named id is hidden.
func (c Config) Hidden(id string) bool {
	for _, h := range c.HiddenScreens {
		if h == id {
			return true
		}
	}
	return false
}

// ResolvePath expands path, or the default path when empty.
func ResolvePath(path string) (string, error) {
	return resolvePath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
