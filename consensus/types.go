// Package consensus implements the per-counterparty consensus state
// machine shared by a notary server and an account-holding client: the
// set of transaction numbers issued to the relationship, which of those
// numbers are still available for use, and the signed statements used
// to cross-check that view between the two parties.
package consensus

// TransactionNumber is a server-minted, monotonically increasing
// identifier representing capacity to perform one transaction. Zero
// means "none" and is never issued.
type TransactionNumber uint64

// RequestNumber is scoped to a single Context and advances by one for
// every message the local party sends on that relationship.
type RequestNumber uint64

// NumberSet is an unordered set of TransactionNumber. The zero value is
// a valid empty set.
type NumberSet map[TransactionNumber]struct{}

// NewNumberSet builds a NumberSet from the given numbers.
func NewNumberSet(nums ...TransactionNumber) NumberSet {
	s := make(NumberSet, len(nums))
	for _, n := range nums {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether n is a member of the set.
func (s NumberSet) Contains(n TransactionNumber) bool {
	_, ok := s[n]
	return ok
}

// Clone returns an independent copy of the set.
func (s NumberSet) Clone() NumberSet {
	out := make(NumberSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

// Slice returns the set's members as an ascending-sorted slice. Callers
// that need a stable wire or display order should use this rather than
// ranging over the map directly.
func (s NumberSet) Slice() []TransactionNumber {
	out := make([]TransactionNumber, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sortNumbers(out)
	return out
}

// Equal reports whether the two sets contain exactly the same numbers.
func (s NumberSet) Equal(other NumberSet) bool {
	if len(s) != len(other) {
		return false
	}
	for n := range s {
		if !other.Contains(n) {
			return false
		}
	}
	return true
}

// SupersetOf reports whether s contains every member of other.
func (s NumberSet) SupersetOf(other NumberSet) bool {
	for n := range other {
		if !s.Contains(n) {
			return false
		}
	}
	return true
}

// sortNumbers performs a simple insertion sort; number sets in this
// package are small (tens to low hundreds of entries per relationship)
// so an allocation-free sort beats pulling in sort.Slice's reflection
// overhead.
func sortNumbers(nums []TransactionNumber) {
	for i := 1; i < len(nums); i++ {
		for j := i; j > 0 && nums[j-1] > nums[j]; j-- {
			nums[j-1], nums[j] = nums[j], nums[j-1]
		}
	}
}
