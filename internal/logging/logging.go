package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnvVar overrides the configured level when set.
// Valid values: "debug", "info", "warn", "error".
const LevelEnvVar = "MOBILEINFO_LOG_LEVEL"

// ResolveLevel picks the effective level: the environment wins over the
// configured value. An empty result means logging is off.
func ResolveLevel(configured string) string {
	if env := strings.TrimSpace(os.Getenv(LevelEnvVar)); env != "" {
		return strings.ToLower(env)
	}
	return strings.ToLower(strings.TrimSpace(configured))
}

// ParseLevel maps a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a console-encoded logger writing to path. The TUI owns the
// terminal, so output never goes to stdout. An empty level returns a no-op
// logger.
func New(level, path string) (*zap.Logger, error) {
	if level == "" {
		return zap.NewNop(), nil
	}
	if path == "" {
		return nil, fmt.Errorf("log level %q set but no log file configured", level)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
