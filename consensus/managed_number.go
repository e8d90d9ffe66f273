package consensus

// Purpose tags why a ManagedNumber was acquired: most request types
// need a fresh number, but the tag lets AcquireManagedNumber special-case
// the ones that don't.
type Purpose string

// PurposeProcessInbox is the one purpose that never reserves a number
// at all, regardless of how many are available: a processInbox request
// carries no opening number of its own.
const PurposeProcessInbox Purpose = "processInbox"

// ManagedNumber is a scoped acquisition of one transaction number: it
// pulls a number out of its Context's available set for the duration
// of a single transaction attempt, and recovers it automatically on
// Close unless the caller marked the attempt a success. It plays the
// role a destructor-driven RAII guard would in a language with
// destructors; Close must be called explicitly, typically via defer.
type ManagedNumber struct {
	ctx     *Context
	number  TransactionNumber
	Purpose Purpose
	success bool
	closed  bool
}

// AcquireManagedNumber reserves one number from ctx's available set for
// the given purpose and returns a guard over it. The number is consumed
// (removed from available, left in issued) immediately; it is recovered
// on Close unless SetSuccess(true) is called first.
//
// purpose == PurposeProcessInbox never attempts a reservation at all,
// and every other purpose that finds the available pool empty gets the
// zero sentinel back with a nil error rather than a hard failure, so
// every caller can defer Close unconditionally and branch on Valid()
// instead of on the error.
func AcquireManagedNumber(ctx *Context, purpose Purpose) (*ManagedNumber, error) {
	if purpose == PurposeProcessInbox {
		return &ManagedNumber{Purpose: purpose}, nil
	}

	nums, err := ctx.SelectAvailable(1)
	if err != nil {
		if _, insufficient := err.(*ErrInsufficientNumbers); insufficient {
			return &ManagedNumber{Purpose: purpose}, nil
		}
		return nil, err
	}
	n := nums[0]
	if err := ctx.Consume(n); err != nil {
		return nil, err
	}
	return &ManagedNumber{ctx: ctx, number: n, Purpose: purpose}, nil
}

// ZeroManagedNumber returns the sentinel "no number reserved" guard.
// Some operations, inbox-processing notices chief among them, don't
// need a fresh transaction number at all; giving them a non-nil,
// empty ManagedNumber (Valid reports false) instead of a special nil
// case lets every caller defer Close unconditionally.
func ZeroManagedNumber() *ManagedNumber {
	return &ManagedNumber{}
}

// Number returns the reserved transaction number, or 0 for the zero
// sentinel.
func (m *ManagedNumber) Number() TransactionNumber { return m.number }

// Valid reports whether this guard actually reserved a number.
func (m *ManagedNumber) Valid() bool { return m.number != 0 }

// SetSuccess marks whether the transaction this number was reserved
// for completed. Calling it on the zero sentinel is a harmless no-op.
func (m *ManagedNumber) SetSuccess(success bool) {
	if !m.Valid() {
		return
	}
	m.ctx.mu.Lock()
	m.success = success
	m.ctx.mu.Unlock()
}

// Close releases the guard. If the transaction was never marked a
// success, the reserved number is recovered back into the available
// set. Close is idempotent and safe to call more than once (e.g. once
// from a deferred call and once explicitly on the success path).
func (m *ManagedNumber) Close() error {
	if !m.Valid() {
		return nil
	}

	m.ctx.mu.Lock()
	if m.closed {
		m.ctx.mu.Unlock()
		return nil
	}
	m.closed = true
	success := m.success
	m.ctx.mu.Unlock()

	if success {
		return nil
	}
	return m.ctx.Recover(m.number)
}
