// Package logger builds the process-wide slog.Logger.
package logger

import (
	"io"
	"log/slog"
)

// New returns a JSON logger writing to w at the named level (debug, info,
// warn, error). An unknown level falls back to info.
func New(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
