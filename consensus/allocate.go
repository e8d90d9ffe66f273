package consensus

import "fmt"

// ErrInsufficientNumbers is returned when a relationship's available
// pool cannot satisfy a requested batch size. Mirrors the shape of
// lnwallet/chanfunding's ErrInsufficientFunds: a concrete type carrying
// both sides of the shortfall rather than a bare string.
type ErrInsufficientNumbers struct {
	Needed, Have int
}

func (e *ErrInsufficientNumbers) Error() string {
	return fmt.Sprintf("not enough available transaction numbers to satisfy "+
		"request, need %d only have %d available", e.Needed, e.Have)
}

// SelectNumbers picks `count` numbers out of the available set,
// lowest-first, for a multi-number transaction. Selection order is deterministic so that two callers
// racing to read the same snapshot of `available` would make the same
// choice, which keeps retries idempotent.
//
// This does not mutate available; the caller is expected to follow a
// successful selection with one Consume per selected number through
// the owning Context.
func SelectNumbers(available NumberSet, count int) ([]TransactionNumber, error) {
	if count <= 0 {
		return nil, nil
	}

	candidates := available.Slice()
	if len(candidates) < count {
		return nil, &ErrInsufficientNumbers{Needed: count, Have: len(candidates)}
	}

	return candidates[:count], nil
}
