// Package crypto supplies reference implementations of the Signer and
// Hasher collaborators the core consensus package externalizes: it is
// demo/test wiring, not a key-management product.
package crypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/wigggles/otxconsensus/consensus"
)

// Secp256k1Signer implements consensus.Signer over ECDSA signatures on
// the secp256k1 curve, a primitive Decred software uses
// throughout for on-chain and channel signing. KeyRefs are resolved
// against an in-memory keyring; a production deployment would swap
// this for an HSM- or wallet-backed lookup without touching the core.
type Secp256k1Signer struct {
	keys map[consensus.KeyRef]*secp256k1.PrivateKey
}

// NewSecp256k1Signer returns a signer with an empty keyring.
func NewSecp256k1Signer() *Secp256k1Signer {
	return &Secp256k1Signer{keys: make(map[consensus.KeyRef]*secp256k1.PrivateKey)}
}

// AddKey generates a fresh private key and registers it under ref,
// returning the corresponding serialized compressed public key so the
// caller can distribute it out of band.
func (s *Secp256k1Signer) AddKey(ref consensus.KeyRef) ([]byte, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("crypto: generating key for %s: %w", ref, err)
	}
	s.keys[ref] = priv
	return priv.PubKey().SerializeCompressed(), nil
}

// ImportKey registers an existing private key under ref.
func (s *Secp256k1Signer) ImportKey(ref consensus.KeyRef, priv *secp256k1.PrivateKey) {
	s.keys[ref] = priv
}

// PublicKey returns the serialized compressed public key for ref, if
// known.
func (s *Secp256k1Signer) PublicKey(ref consensus.KeyRef) ([]byte, bool) {
	priv, ok := s.keys[ref]
	if !ok {
		return nil, false
	}
	return priv.PubKey().SerializeCompressed(), true
}

// Sign implements consensus.Signer.
func (s *Secp256k1Signer) Sign(payload []byte, key consensus.KeyRef) (consensus.Signature, error) {
	priv, ok := s.keys[key]
	if !ok {
		return nil, fmt.Errorf("crypto: unknown key ref %q", key)
	}
	digest := Blake256(payload)
	sig := ecdsa.Sign(priv, digest)
	return consensus.Signature(sig.Serialize()), nil
}

// Verify implements consensus.Signer. It reports false (never panics)
// on any malformed signature or unknown key.
func (s *Secp256k1Signer) Verify(payload []byte, sig consensus.Signature, key consensus.KeyRef) bool {
	priv, ok := s.keys[key]
	if !ok {
		return false
	}
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	digest := Blake256(payload)
	return parsed.Verify(digest, priv.PubKey())
}
