package crypto_test

import (
	"testing"

	"github.com/wigggles/otxconsensus/consensus"
	"github.com/wigggles/otxconsensus/consensus/verify"
	"github.com/wigggles/otxconsensus/internal/crypto"
	"github.com/wigggles/otxconsensus/receipt"
)

// TestSecp256k1SignerVerifiesStatement wires a real Secp256k1Signer into
// verify.Statement end to end: AddKey, Sign, and Verify all run through
// secp256k1/ecdsa rather than a test double.
func TestSecp256k1SignerVerifiesStatement(t *testing.T) {
	signer := crypto.NewSecp256k1Signer()
	if _, err := signer.AddKey("notary-key"); err != nil {
		t.Fatalf("AddKey: %v", err)
	}

	stmt := consensus.BuildStatement("notary-1", "alice", consensus.NewNumberSet(1, 2), consensus.NewNumberSet(1, 2))

	sig, err := signer.Sign(stmt.Serialize(), "notary-key")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if err := verify.Statement(signer, stmt, sig, "notary-key"); err != nil {
		t.Fatalf("verify.Statement: %v", err)
	}
}

// TestSecp256k1SignerRejectsTamperedStatement confirms a statement
// re-serialized with different contents fails verification under the
// same key, rather than the signer accepting anything it is handed.
func TestSecp256k1SignerRejectsTamperedStatement(t *testing.T) {
	signer := crypto.NewSecp256k1Signer()
	if _, err := signer.AddKey("notary-key"); err != nil {
		t.Fatalf("AddKey: %v", err)
	}

	stmt := consensus.BuildStatement("notary-1", "alice", consensus.NewNumberSet(1), consensus.NewNumberSet(1))
	sig, err := signer.Sign(stmt.Serialize(), "notary-key")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := consensus.BuildStatement("notary-1", "alice", consensus.NewNumberSet(1, 2), consensus.NewNumberSet(1, 2))
	if err := verify.Statement(signer, tampered, sig, "notary-key"); err == nil {
		t.Fatal("expected verify.Statement to reject a signature over a different statement")
	}
}

// TestBlake256HasherVerifiesBoxReceipt wires Blake256Hasher into
// receipt.VerifyBoxReceipt: the abbreviated receipt's Hash field is a
// real chainhash.HashB digest of the full receipt's content, not a
// stand-in.
func TestBlake256HasherVerifiesBoxReceipt(t *testing.T) {
	hasher := crypto.Blake256Hasher{}

	full := &receipt.Receipt{
		Kind:               receipt.KindPending,
		TransactionNum:     9,
		ReferenceNum:       20,
		Amount:             300,
		ReferenceToDisplay: "original-9",
		Attachment:         []byte("instrument contents"),
		DateSigned:         100,
	}
	full.Hash = full.ComputeHash(hasher)

	abbrev := &receipt.Receipt{
		Kind:               full.Kind,
		TransactionNum:     full.TransactionNum,
		ReferenceNum:       full.ReferenceNum,
		ReferenceToDisplay: full.ReferenceToDisplay,
		DateSigned:         full.DateSigned,
		Hash:               full.Hash,
		Abbreviated:        true,
	}

	if err := receipt.VerifyBoxReceipt(abbrev, full, hasher); err != nil {
		t.Fatalf("VerifyBoxReceipt: %v", err)
	}
}

// TestBlake2bHasherDetectsTamperedBoxReceipt swaps in Blake2bHasher, the
// second, independent hash primitive, and confirms it rejects a full
// receipt whose attachment has changed since the abbreviation was cut.
func TestBlake2bHasherDetectsTamperedBoxReceipt(t *testing.T) {
	hasher := crypto.Blake2bHasher{}

	full := &receipt.Receipt{
		Kind:           receipt.KindPending,
		TransactionNum: 9,
		ReferenceNum:   20,
		Attachment:     []byte("original contents"),
	}
	abbrev := &receipt.Receipt{
		Kind:           full.Kind,
		TransactionNum: full.TransactionNum,
		ReferenceNum:   full.ReferenceNum,
		Hash:           full.ComputeHash(hasher),
		Abbreviated:    true,
	}

	full.Attachment = []byte("tampered contents")
	if err := receipt.VerifyBoxReceipt(abbrev, full, hasher); err == nil {
		t.Fatal("expected VerifyBoxReceipt to reject a tampered full receipt")
	}
}
