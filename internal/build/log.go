// Package build provides the sub-logger registry used by every package
// in this module, mirroring the log.go/build package split node daemons use:
// packages declare a package-level slog.Logger and a UseLogger hook;
// the root log.go wires them all to one RotatingLogWriter.
package build

import (
	"github.com/decred/slog"
)

// LogSubsystem carries the short tag a sub-logger is registered under
// (e.g. "CNSS", "VRFY"), the same four-letter-tag convention node
// daemons commonly use ("LNWL", "CHDB", ...).
type LogSubsystem = string

// NewSubLogger returns a new logger for the given subsystem. If genLogger
// is nil, the returned logger discards all output; the root package's
// SetupLoggers later replaces such placeholders with real loggers. This
// lets packages declare loggers at init time before the root logger is
// ready, exactly as a node daemon's addPkgLogger does.
func NewSubLogger(subsystem string, genLogger func(string) slog.Logger) slog.Logger {
	if genLogger == nil {
		return slog.Disabled
	}
	return genLogger(subsystem)
}

// RotatingLogWriter manages a rotating log file shared by every
// registered sub-logger, plus the backend used to mint each
// subsystem's slog.Logger.
type RotatingLogWriter struct {
	backend  *slog.Backend
	subLoggers map[string]slog.Logger
	rotator  *LogRotator
}

// NewRotatingLogWriter returns a writer with no rotator attached yet;
// InitLogRotator must be called before any logger produced by
// GenSubLogger actually writes anywhere.
func NewRotatingLogWriter() *RotatingLogWriter {
	return &RotatingLogWriter{
		subLoggers: make(map[string]slog.Logger),
	}
}

// InitLogRotator opens (creating parent directories as needed) a
// rotating log file at logFile, capped at maxRolls archived copies of
// up to maxSizeBytes each, and attaches it as this writer's output.
func (r *RotatingLogWriter) InitLogRotator(logFile string, maxSizeBytes int64, maxRolls int) error {
	rotator, err := NewLogRotator(logFile, maxSizeBytes, maxRolls)
	if err != nil {
		return err
	}
	r.rotator = rotator
	r.backend = slog.NewBackend(rotator)
	return nil
}

// GenSubLogger mints a new slog.Logger for subsystem, backed by this
// writer's rotator. Matches the signature a node daemon's log.go
// expects for AddSubLogger's root.GenSubLogger argument.
func (r *RotatingLogWriter) GenSubLogger(subsystem string) slog.Logger {
	if r.backend == nil {
		return slog.Disabled
	}
	return r.backend.Logger(subsystem)
}

// RegisterSubLogger records logger under subsystem so later callers
// (e.g. a config command that changes log levels) can look it up.
func (r *RotatingLogWriter) RegisterSubLogger(subsystem string, logger slog.Logger) {
	r.subLoggers[subsystem] = logger
}

// SubLogger returns the previously registered logger for subsystem, or
// the disabled logger if none was registered.
func (r *RotatingLogWriter) SubLogger(subsystem string) slog.Logger {
	if l, ok := r.subLoggers[subsystem]; ok {
		return l
	}
	return slog.Disabled
}

// SetLogLevels applies levelStr (a slog level name, e.g. "debug") to
// every registered sub-logger.
func (r *RotatingLogWriter) SetLogLevels(levelStr string) {
	level, ok := slog.LevelFromString(levelStr)
	if !ok {
		return
	}
	for _, l := range r.subLoggers {
		l.SetLevel(level)
	}
}

// Close releases the underlying rotator.
func (r *RotatingLogWriter) Close() error {
	if r.rotator == nil {
		return nil
	}
	return r.rotator.Close()
}
