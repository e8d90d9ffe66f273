package receipt

import "testing"

type sumHasher struct{}

func (sumHasher) Hash(data []byte) []byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return []byte{sum}
}

func TestVerifyBoxReceiptRoundTrip(t *testing.T) {
	h := sumHasher{}
	full := &Receipt{
		Kind:               KindPending,
		TransactionNum:     42,
		ReferenceToDisplay: "ref-1",
		Note:               "hello",
	}
	abbrev := &Receipt{
		Abbreviated:        true,
		TransactionNum:     42,
		ReferenceToDisplay: "ref-1",
		Hash:               full.ComputeHash(h),
	}

	if err := VerifyBoxReceipt(abbrev, full, h); err != nil {
		t.Fatalf("VerifyBoxReceipt: %v", err)
	}
}

func TestVerifyBoxReceiptHashMismatch(t *testing.T) {
	h := sumHasher{}
	full := &Receipt{Kind: KindPending, TransactionNum: 42, Note: "hello"}
	abbrev := &Receipt{
		Abbreviated:    true,
		TransactionNum: 42,
		Hash:           []byte{0xFF},
	}

	var mismatch *ErrHashMismatch
	err := VerifyBoxReceipt(abbrev, full, h)
	if err == nil {
		t.Fatal("expected a hash mismatch error")
	}
	if e, ok := err.(*ErrHashMismatch); !ok {
		t.Fatalf("expected *ErrHashMismatch, got %T", err)
	} else {
		mismatch = e
	}
	if mismatch.TransactionNum != 42 {
		t.Fatalf("expected transaction 42, got %d", mismatch.TransactionNum)
	}
}
