package receipt

import "github.com/decred/slog"

// logger is initialized with no output filters, meaning the package
// will not perform any logging by default until UseLogger is called.
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
