package store

import "github.com/decred/slog"

var logger slog.Logger

func init() {
	UseLogger(slog.Disabled)
}

// DisableLog disables all library log output.
func DisableLog() {
	UseLogger(slog.Disabled)
}

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(l slog.Logger) {
	logger = l
}
