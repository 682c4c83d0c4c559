// Package logging builds the process-wide structured logger: log/slog
// with a tint handler for readable console output, grounded on the
// tint-over-slog wiring sketched in the example corpus's
// internal/shared/logger package (orris), translated from that repo's
// conditional-source-handler idea into a plain level+format switch.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// New builds a slog.Logger for the given level name ("debug", "info",
// "warn", "error") and format ("console" or "json"). Unrecognized level
// names fall back to info; format other than "json" gets the tint
// console handler.
func New(level, format string) *slog.Logger {
	var handler slog.Handler
	lvl := parseLevel(level)
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
