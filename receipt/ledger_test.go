package receipt

import "testing"

func TestLedgerLookups(t *testing.T) {
	l := NewLedger(BoxInbox, "acct-1", "notary-1", "alice")
	l.SaveBoxReceipt(&Receipt{Kind: KindPending, TransactionNum: 1, ReferenceNum: 100, Origin: Origin{Number: 50}})
	l.SaveBoxReceipt(&Receipt{Kind: KindPending, TransactionNum: 2, ReferenceNum: 200, Origin: Origin{Number: 51}})

	if r, ok := l.ByTransactionNum(1); !ok || r.ReferenceNum != 100 {
		t.Fatalf("ByTransactionNum(1): %v, %v", r, ok)
	}
	if r, ok := l.ByReferenceNum(200); !ok || r.TransactionNum != 2 {
		t.Fatalf("ByReferenceNum(200): %v, %v", r, ok)
	}
	if r, ok := l.ByNumberOfOrigin(51); !ok || r.TransactionNum != 2 {
		t.Fatalf("ByNumberOfOrigin(51): %v, %v", r, ok)
	}
	if _, ok := l.ByTransactionNum(999); ok {
		t.Fatal("expected no match for unknown transaction number")
	}
}

func TestLedgerSaveReplacesExisting(t *testing.T) {
	l := NewLedger(BoxOutbox, "acct-1", "notary-1", "alice")
	l.SaveBoxReceipt(&Receipt{TransactionNum: 1, ReferenceNum: 10})
	l.SaveBoxReceipt(&Receipt{TransactionNum: 1, ReferenceNum: 20})

	if l.Len() != 1 {
		t.Fatalf("expected a single entry after replace, got %d", l.Len())
	}
	r, _ := l.ByTransactionNum(1)
	if r.ReferenceNum != 20 {
		t.Fatalf("expected the replacement's reference number, got %d", r.ReferenceNum)
	}
}

func TestLedgerTombstone(t *testing.T) {
	l := NewLedger(BoxInbox, "acct-1", "notary-1", "alice")
	l.SaveBoxReceipt(&Receipt{TransactionNum: 1})
	l.SaveBoxReceipt(&Receipt{TransactionNum: 2})

	if err := l.Tombstone(1); err != nil {
		t.Fatalf("Tombstone: %v", err)
	}

	if len(l.Live()) != 1 {
		t.Fatalf("expected one live receipt after tombstoning, got %d", len(l.Live()))
	}
	if l.Len() != 2 {
		t.Fatalf("expected tombstoning to keep the entry present, Len()=%d", l.Len())
	}

	if err := l.Tombstone(999); err == nil {
		t.Fatal("expected an error tombstoning an unknown transaction number")
	}
}

func TestLedgerByNumberOfOriginSkipsUnresolvable(t *testing.T) {
	l := NewLedger(BoxInbox, "acct-1", "notary-1", "alice")
	l.SaveBoxReceipt(&Receipt{Kind: KindAcceptPending, TransactionNum: 1})

	if _, ok := l.ByNumberOfOrigin(0); ok {
		t.Fatal("expected an unresolvable origin to be skipped, not matched")
	}
}
