package main

import (
	"fmt"
	"io"
	"log/slog"
)

// newLogger builds the harness logger. Level names are those accepted by
// slog.Level.UnmarshalText ("debug", "info", "warn", "error", any case).
func newLogger(w io.Writer, level string, json bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
