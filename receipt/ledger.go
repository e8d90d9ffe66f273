package receipt

import "fmt"

// BoxKind identifies which of a party's boxes a Ledger represents.
type BoxKind int

const (
	BoxNymbox BoxKind = iota
	BoxInbox
	BoxOutbox
	BoxPaymentInbox
	BoxRecordBox
	BoxExpiredBox
	BoxMessage
)

// Ledger is an ordered container of Receipts representing one box.
// Receipts are queried by transaction number, reference number, or
// origin number.
type Ledger struct {
	Kind      BoxKind
	AccountID string
	NotaryID  string
	PartyID   string

	receipts []*Receipt
}

// NewLedger returns an empty ledger scoped to one account/notary/party
// triple and box kind.
func NewLedger(kind BoxKind, accountID, notaryID, partyID string) *Ledger {
	return &Ledger{
		Kind:      kind,
		AccountID: accountID,
		NotaryID:  notaryID,
		PartyID:   partyID,
	}
}

// SaveBoxReceipt appends r to the ledger, or replaces the existing
// entry for the same transaction number if one is present.
func (l *Ledger) SaveBoxReceipt(r *Receipt) {
	for i, existing := range l.receipts {
		if existing.TransactionNum == r.TransactionNum {
			l.receipts[i] = r
			return
		}
	}
	l.receipts = append(l.receipts, r)
}

// Tombstone marks the receipt for transaction number n as deleted
// without physically removing it; physical deletion is left to an
// operator.
func (l *Ledger) Tombstone(n TransactionNumber) error {
	r, ok := l.ByTransactionNum(n)
	if !ok {
		return fmt.Errorf("receipt: no entry for transaction %d to tombstone", n)
	}
	r.Deleted = true
	return nil
}

// Receipts returns every receipt in the ledger, including tombstoned
// ones, in insertion order.
func (l *Ledger) Receipts() []*Receipt {
	out := make([]*Receipt, len(l.receipts))
	copy(out, l.receipts)
	return out
}

// Live returns every non-tombstoned receipt in the ledger, in
// insertion order.
func (l *Ledger) Live() []*Receipt {
	out := make([]*Receipt, 0, len(l.receipts))
	for _, r := range l.receipts {
		if !r.Deleted {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of receipts, including tombstoned ones.
func (l *Ledger) Len() int { return len(l.receipts) }

// ByTransactionNum looks up a receipt by its own transaction number.
func (l *Ledger) ByTransactionNum(n TransactionNumber) (*Receipt, bool) {
	for _, r := range l.receipts {
		if r.TransactionNum == n {
			return r, true
		}
	}
	return nil, false
}

// ByReferenceNum looks up a receipt by its reference number.
func (l *Ledger) ByReferenceNum(n uint64) (*Receipt, bool) {
	for _, r := range l.receipts {
		if r.ReferenceNum == n {
			return r, true
		}
	}
	return nil, false
}

// ByNumberOfOrigin looks up a receipt whose number of origin is n.
// Receipts that fail to compute their number of origin (e.g.
// acceptPending entries with none set) are skipped rather than
// treated as a match.
func (l *Ledger) ByNumberOfOrigin(n TransactionNumber) (*Receipt, bool) {
	for _, r := range l.receipts {
		origin, err := r.NumberOfOrigin()
		if err != nil {
			continue
		}
		if origin == n {
			return r, true
		}
	}
	return nil, false
}
