package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// LevelCritical ranks above slog.LevelError and marks failures that end the
// current command.
const LevelCritical = slog.Level(12)

// ParseLevel maps a level name to a slog level. Names are case-insensitive;
// WARNING and FATAL are accepted as aliases of WARN and CRITICAL.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "CRITICAL", "FATAL":
		return LevelCritical, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// LevelName returns the canonical upper-case name for level.
func LevelName(level slog.Level) string {
	switch {
	case level >= LevelCritical:
		return "CRITICAL"
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
