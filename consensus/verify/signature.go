package verify

import (
	"fmt"

	"github.com/wigggles/otxconsensus/consensus"
)

// Statement checks that sig is a valid signature over stmt's wire form
// under key. Statements and receipts are signed over their serialized
// bytes, so the whole payload is the digest input. There's no
// multi-key fan-out here the way a channel announcement has, just the
// one statement and the one signer it claims to be from.
func Statement(signer consensus.Signer, stmt *consensus.Statement, sig consensus.Signature, key consensus.KeyRef) error {
	if len(sig) == 0 {
		return fmt.Errorf("%w: statement has no signature attached", consensus.ErrUnsignedOrBadSignature)
	}
	if !signer.Verify(stmt.Serialize(), sig, key) {
		return fmt.Errorf("%w: statement signature does not verify", consensus.ErrUnsignedOrBadSignature)
	}
	return nil
}

// Context checks that sig is a valid signature over payload under key,
// attesting to some Context-derived fact (e.g. a ping reply or a nymbox
// hash) that isn't itself a Statement or Receipt.
func Context(signer consensus.Signer, payload []byte, sig consensus.Signature, key consensus.KeyRef) error {
	if len(sig) == 0 {
		return fmt.Errorf("%w: no signature attached", consensus.ErrUnsignedOrBadSignature)
	}
	if !signer.Verify(payload, sig, key) {
		return fmt.Errorf("%w: signature does not verify", consensus.ErrUnsignedOrBadSignature)
	}
	return nil
}
