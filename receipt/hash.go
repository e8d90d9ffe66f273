package receipt

import (
	"bytes"
	"fmt"
)

// ErrHashMismatch is returned by VerifyBoxReceipt when a full-form
// receipt does not hash to its abbreviated commitment.
type ErrHashMismatch struct {
	TransactionNum TransactionNumber
}

func (e *ErrHashMismatch) Error() string {
	return fmt.Sprintf("receipt: hash mismatch for transaction %d", e.TransactionNum)
}

// Hasher is the hashing collaborator consumed by box-receipt
// verification: hash(bytes) -> [N]byte for some fixed N. The
// core never picks the algorithm; internal/crypto supplies a concrete
// implementation.
type Hasher interface {
	Hash(data []byte) []byte
}

// content returns the bytes a full-form receipt's commitment hash is
// computed over: the fields that matter for this receipt's identity,
// in a fixed order, so VerifyBoxReceipt is deterministic.
func content(full *Receipt) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d|%d|%d|%s|%s|%d",
		full.Kind, full.TransactionNum, full.ReferenceNum,
		full.ReferenceToDisplay, full.Note, full.DateSigned)
	buf.Write(full.Attachment)
	return buf.Bytes()
}

// ComputeHash derives r's content-address using h. Meaningful only for
// full-form receipts; calling it on an abbreviated one hashes its
// fields without the note and attachment it lacks (the Hash it carries
// is not part of the input), which is never what a caller wants, so
// IsFull should be checked first.
func (r *Receipt) ComputeHash(h Hasher) []byte {
	return h.Hash(content(r))
}

// VerifyBoxReceipt checks that full is the receipt abbrev commits to:
// the content hash matches, and the two agree on transaction number
// and reference-to-display.
func VerifyBoxReceipt(abbrev, full *Receipt, h Hasher) error {
	if !abbrev.Abbreviated {
		return fmt.Errorf("receipt: VerifyBoxReceipt's first argument must be an abbreviated receipt")
	}

	gotHash := full.ComputeHash(h)
	if !bytes.Equal(gotHash, abbrev.Hash) {
		return &ErrHashMismatch{TransactionNum: abbrev.TransactionNum}
	}
	if full.TransactionNum != abbrev.TransactionNum {
		return &ErrHashMismatch{TransactionNum: abbrev.TransactionNum}
	}
	if full.ReferenceToDisplay != abbrev.ReferenceToDisplay {
		return &ErrHashMismatch{TransactionNum: abbrev.TransactionNum}
	}
	return nil
}
