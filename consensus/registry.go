package consensus

import "fmt"

// NumberRegistry owns the three transaction-number sets (issued,
// available, tentative) and the highest
// watermark for one side of a relationship. It is not
// safe for concurrent use on its own; the owning Context serializes
// access to it under its own lock.
type NumberRegistry struct {
	issued    NumberSet
	available NumberSet
	tentative NumberSet
	highest   TransactionNumber
}

// NewNumberRegistry returns an empty registry.
func NewNumberRegistry() *NumberRegistry {
	return &NumberRegistry{
		issued:    make(NumberSet),
		available: make(NumberSet),
		tentative: make(NumberSet),
	}
}

// Issued returns a copy of the issued set.
func (r *NumberRegistry) Issued() NumberSet { return r.issued.Clone() }

// Available returns a copy of the available set.
func (r *NumberRegistry) Available() NumberSet { return r.available.Clone() }

// Tentative returns a copy of the tentative set.
func (r *NumberRegistry) Tentative() NumberSet { return r.tentative.Clone() }

// Highest returns the watermark: the largest number ever accepted into
// the issued set.
func (r *NumberRegistry) Highest() TransactionNumber { return r.highest }

// HasOpenTransactions reports whether any issued number is currently
// unavailable (i.e. spent but still outstanding).
func (r *NumberRegistry) HasOpenTransactions() bool {
	return len(r.issued) != len(r.available)
}

// Issue adds n to both the issued and available sets. It fails with
// AlreadyIssuedError if n is already issued. n must be non-zero.
func (r *NumberRegistry) Issue(n TransactionNumber) error {
	if n == 0 {
		return fmt.Errorf("cannot issue number zero")
	}
	if r.issued.Contains(n) {
		return &AlreadyIssuedError{Number: n}
	}
	r.issued[n] = struct{}{}
	r.available[n] = struct{}{}
	if n > r.highest {
		r.highest = n
	}
	return nil
}

// AcceptIssued adds every number in s to both the issued and available
// sets atomically, skipping numbers already present rather than
// failing on them. It returns the count of numbers actually added,
// which is equal to len(s) iff every number in s was freshly added.
func (r *NumberRegistry) AcceptIssued(s NumberSet) int {
	added := 0
	for n := range s {
		if r.issued.Contains(n) {
			continue
		}
		r.issued[n] = struct{}{}
		r.available[n] = struct{}{}
		if n > r.highest {
			r.highest = n
		}
		added++
	}
	return added
}

// Consume removes n from the available set, leaving it in issued. It
// fails with NotAvailableError if n isn't available.
func (r *NumberRegistry) Consume(n TransactionNumber) error {
	if !r.available.Contains(n) {
		return &NotAvailableError{Number: n}
	}
	delete(r.available, n)
	return nil
}

// Close removes n from both the issued and available sets. It fails
// with NotIssuedError if n isn't issued.
func (r *NumberRegistry) Close(n TransactionNumber) error {
	if !r.issued.Contains(n) {
		return &NotIssuedError{Number: n}
	}
	delete(r.issued, n)
	delete(r.available, n)
	return nil
}

// Recover restores n to the available set provided it is still issued.
// It is idempotent: recovering an already-available number is a no-op
// success. It fails with NotIssuedError if n isn't issued at all.
func (r *NumberRegistry) Recover(n TransactionNumber) error {
	if !r.issued.Contains(n) {
		return &NotIssuedError{Number: n}
	}
	r.available[n] = struct{}{}
	return nil
}

// AddTentative records n as server-offered-but-unacknowledged. It
// silently refuses (no error, no effect) numbers at or below the
// highest watermark, which defends against replayed deliveries.
func (r *NumberRegistry) AddTentative(n TransactionNumber) {
	if n <= r.highest {
		return
	}
	r.tentative[n] = struct{}{}
}

// RemoveTentative drops n from the tentative set, if present.
func (r *NumberRegistry) RemoveTentative(n TransactionNumber) {
	delete(r.tentative, n)
}

// UpdateHighest splits s into numbers above the current watermark
// ("good") and at-or-below it ("bad", a replay). If good is non-empty,
// the watermark advances to the maximum of s. It returns the smallest
// bad number, or 0 if s contained no violations.
func (r *NumberRegistry) UpdateHighest(s NumberSet) (good, bad NumberSet, smallestBad TransactionNumber) {
	good = make(NumberSet)
	bad = make(NumberSet)

	var max TransactionNumber
	for n := range s {
		if n <= r.highest {
			bad[n] = struct{}{}
			if smallestBad == 0 || n < smallestBad {
				smallestBad = n
			}
			continue
		}
		good[n] = struct{}{}
		if n > max {
			max = n
		}
	}

	if len(good) > 0 {
		r.highest = max
	}

	return good, bad, smallestBad
}

// Audit checks the registry's invariants and returns the
// first violated one as an InvariantViolatedError, or nil if the
// registry is consistent. It is intended for use in debug builds and
// tests; production code paths should never need to call it because
// every mutator above maintains the invariants by construction.
func (r *NumberRegistry) Audit() error {
	for n := range r.available {
		if !r.issued.Contains(n) {
			return &InvariantViolatedError{
				Which: fmt.Sprintf("available number %d not in issued", n),
			}
		}
	}

	for n := range r.tentative {
		if r.issued.Contains(n) {
			return &InvariantViolatedError{
				Which: fmt.Sprintf("tentative number %d also issued", n),
			}
		}
	}

	var maxIssued TransactionNumber
	for n := range r.issued {
		if n > maxIssued {
			maxIssued = n
		}
	}
	if len(r.issued) > 0 && r.highest < maxIssued {
		return &InvariantViolatedError{
			Which: fmt.Sprintf("highest %d below max issued %d", r.highest, maxIssued),
		}
	}

	return nil
}

// DebugString renders the full contents of the registry for inclusion
// in a log line ahead of an invariant-violation teardown: a full,
// not-for-humans dump rather than a curated String() method.
func (r *NumberRegistry) DebugString() string {
	return spewDump(r)
}
