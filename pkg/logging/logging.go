// Package logging wires slog to a tint handler so local runs get readable,
// colored output. Level comes from LOG_LEVEL (debug, info, warn, error);
// anything unrecognized falls back to info.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Setup installs the default logger at the level named by LOG_LEVEL.
func Setup() {
	SetupWithLevel(levelFromEnv())
}

// SetupWithLevel installs the default logger at an explicit level, bypassing
// the environment.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}),
	))
}

func levelFromEnv() slog.Level {
	if level, ok := levelNames[strings.ToLower(os.Getenv("LOG_LEVEL"))]; ok {
		return level
	}
	return slog.LevelInfo
}
