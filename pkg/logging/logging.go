// Package logging builds the operational loggers of the register on top of
// log/slog.
package logging

import (
	"io"
	"log/slog"

	"go.temporal.io/sdk/log"
)

// New writes text records at level and above. An unknown level means info.
func New(w io.Writer, level string) log.Logger {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		slogLevel = slog.LevelInfo
	}
	return log.NewStructuredLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel})))
}

// NewNopLogger drops everything.
func NewNopLogger() log.Logger {
	return log.NewStructuredLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
