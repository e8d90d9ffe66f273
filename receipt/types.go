package receipt

import "github.com/wigggles/otxconsensus/consensus"

// TransactionNumber is re-exported from the consensus package so
// callers working only with receipts don't need a second import for
// the shared numeric type.
type TransactionNumber = consensus.TransactionNumber

// Receipt is a single ledger entry. It may carry full
// contents (Attachment/Note set, Hash computed on demand) or be in
// abbreviated form (Hash set, Attachment/Note empty) to keep
// transmitted sizes small; VerifyBoxReceipt cross-checks the two.
type Receipt struct {
	Kind               Kind
	TransactionNum     TransactionNumber
	ReferenceNum       uint64
	Origin             Origin
	Amount             int64
	DisplayAmount      string
	ClosingNum         TransactionNumber
	ReferenceToDisplay string
	Attachment         []byte
	Note               string
	DateSigned         int64
	Hash               []byte

	// Abbreviated is true when this Receipt carries only a content
	// hash commitment rather than full contents.
	Abbreviated bool

	// Deleted marks a box receipt as tombstoned. Physical deletion is
	// an operator's job; the ledger keeps the tombstone.
	Deleted bool

	// numberOfOrigin caches the lazily-computed origin transaction
	// number. Zero means "not yet computed".
	numberOfOrigin TransactionNumber
}

// IsFull reports whether this Receipt carries its full contents.
func (r *Receipt) IsFull() bool { return !r.Abbreviated }

// SetNumberOfOrigin overrides the cached origin number. Required for
// kinds like acceptPending where it cannot be computed from the
// receipt's own fields.
func (r *Receipt) SetNumberOfOrigin(n TransactionNumber) {
	r.numberOfOrigin = n
}
