package build

import (
	"os"
	"path/filepath"

	"github.com/jrick/logrotate/rotator"
)

// LogRotator wraps github.com/jrick/logrotate/rotator with the
// directory-creation convenience a build-tag-gated file logger
// build-tagged file logger used to provide unconditionally, since this
// module has no alternate stdout/syslog log-type switch worth gating
// behind a build tag.
type LogRotator struct {
	r *rotator.Rotator
}

// NewLogRotator opens (or creates) logFile and its parent directory,
// rotating it once it exceeds maxSizeBytes and keeping at most maxRolls
// archived copies.
func NewLogRotator(logFile string, maxSizeBytes int64, maxRolls int) (*LogRotator, error) {
	logDir := filepath.Dir(logFile)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return nil, err
	}

	r, err := rotator.New(logFile, maxSizeBytes, false, maxRolls)
	if err != nil {
		return nil, err
	}
	return &LogRotator{r: r}, nil
}

// Write implements io.Writer over the underlying rotator.
func (l *LogRotator) Write(p []byte) (int, error) {
	return l.r.Write(p)
}

// Close stops the rotator.
func (l *LogRotator) Close() error {
	l.r.Close()
	return nil
}
