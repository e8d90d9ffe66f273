package consensus

import "github.com/davecgh/go-spew/spew"

// spewDump renders v's full internal state for diagnostic logging.
// Used only on the InvariantViolated path: by the time a
// registry audit fails, the Context is about to be torn down and log
// volume no longer matters as much as capturing everything.
func spewDump(v interface{}) string {
	return spew.Sdump(v)
}
