package receipt_test

import (
	"errors"
	"testing"

	"github.com/wigggles/otxconsensus/receipt"
)

var errNotFound = errors.New("memStorage: not found")

type memStorage map[string][]byte

func (m memStorage) Read(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, errNotFound
	}
	return data, nil
}

func sampleReceipt() *receipt.Receipt {
	return &receipt.Receipt{
		Kind:               receipt.KindChequeReceipt,
		TransactionNum:     42,
		ReferenceNum:       7,
		Origin:             receipt.Origin{Number: 10, Kind: receipt.OriginWithdrawal},
		Amount:             -500,
		DisplayAmount:      "-5.00",
		ReferenceToDisplay: "withdrawal",
		Note:               "",
		Hash:               []byte("abbrev-hash"),
		Abbreviated:        true,
	}
}

func TestReceiptSerializeRoundTrip(t *testing.T) {
	want := sampleReceipt()
	got, err := receipt.ParseReceipt(want.Serialize())
	if err != nil {
		t.Fatalf("ParseReceipt: %v", err)
	}
	if got.TransactionNum != want.TransactionNum || got.ReferenceNum != want.ReferenceNum ||
		got.Origin != want.Origin || got.DisplayAmount != want.DisplayAmount ||
		string(got.Hash) != string(want.Hash) || got.Abbreviated != want.Abbreviated {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestLoadAbbreviatedTrustsIndex(t *testing.T) {
	r := sampleReceipt()
	store := memStorage{"path/42": r.Serialize()}

	got, err := receipt.LoadAbbreviated(store, "path/42")
	if err != nil {
		t.Fatalf("LoadAbbreviated: %v", err)
	}
	if got.TransactionNum != r.TransactionNum {
		t.Fatalf("got txn %d, want %d", got.TransactionNum, r.TransactionNum)
	}
}

func TestLoadAbbreviatedVerifiedRejectsMismatch(t *testing.T) {
	r := sampleReceipt()
	store := memStorage{"path/42": r.Serialize()}

	expected := sampleReceipt()
	expected.TransactionNum = 999

	if _, err := receipt.LoadAbbreviatedVerified(store, "path/42", expected); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestLoadAbbreviatedVerifiedAcceptsMatch(t *testing.T) {
	r := sampleReceipt()
	store := memStorage{"path/42": r.Serialize()}

	got, err := receipt.LoadAbbreviatedVerified(store, "path/42", r)
	if err != nil {
		t.Fatalf("LoadAbbreviatedVerified: %v", err)
	}
	if got.TransactionNum != r.TransactionNum {
		t.Fatalf("got txn %d, want %d", got.TransactionNum, r.TransactionNum)
	}
}
