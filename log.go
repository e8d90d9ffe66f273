// Package otxconsensus ties together the consensus, receipt, harvest,
// and verify packages' loggers under one RotatingLogWriter, mirroring
// a typical node daemon's root log.go.
package otxconsensus

import (
	"github.com/decred/slog"
	"github.com/wigggles/otxconsensus/consensus"
	"github.com/wigggles/otxconsensus/consensus/harvest"
	"github.com/wigggles/otxconsensus/consensus/verify"
	"github.com/wigggles/otxconsensus/internal/build"
	"github.com/wigggles/otxconsensus/internal/store"
	"github.com/wigggles/otxconsensus/internal/transport"
	"github.com/wigggles/otxconsensus/receipt"
)

// replaceableLogger is a thin wrapper so a package logger can be
// swapped out once the root RotatingLogWriter is ready, without the
// package itself needing to know that happened.
type replaceableLogger struct {
	slog.Logger
	subsystem string
}

var (
	pkgLoggers []*replaceableLogger

	addPkgLogger = func(subsystem string) *replaceableLogger {
		l := &replaceableLogger{
			Logger:    build.NewSubLogger(subsystem, nil),
			subsystem: subsystem,
		}
		pkgLoggers = append(pkgLoggers, l)
		return l
	}

	cnssLog = addPkgLogger("CNSS")
	vrfyLog = addPkgLogger("VRFY")
	hrvsLog = addPkgLogger("HRVS")
	rcptLog = addPkgLogger("RCPT")
	storLog = addPkgLogger("STOR")
	xprtLog = addPkgLogger("XPRT")
)

// SetupLoggers initializes every package-level logger in the module
// against root, the same way a node daemon's SetupLoggers wires its own subpackages.
func SetupLoggers(root *build.RotatingLogWriter) {
	for _, l := range pkgLoggers {
		l.Logger = build.NewSubLogger(l.subsystem, root.GenSubLogger)
		SetSubLogger(root, l.subsystem, l.Logger)
	}

	AddSubLogger(root, "CNSS", consensus.UseLogger)
	AddSubLogger(root, "VRFY", verify.UseLogger)
	AddSubLogger(root, "HRVS", harvest.UseLogger)
	AddSubLogger(root, "RCPT", receipt.UseLogger)
	AddSubLogger(root, "STOR", store.UseLogger)
	AddSubLogger(root, "XPRT", transport.UseLogger)
}

// AddSubLogger creates and registers the logger for one subsystem.
func AddSubLogger(root *build.RotatingLogWriter, subsystem string,
	useLoggers ...func(slog.Logger)) {

	logger := build.NewSubLogger(subsystem, root.GenSubLogger)
	SetSubLogger(root, subsystem, logger, useLoggers...)
}

// SetSubLogger registers logger under subsystem and hands it to every
// useLogger hook.
func SetSubLogger(root *build.RotatingLogWriter, subsystem string,
	logger slog.Logger, useLoggers ...func(slog.Logger)) {

	root.RegisterSubLogger(subsystem, logger)
	for _, useLogger := range useLoggers {
		useLogger(logger)
	}
}
