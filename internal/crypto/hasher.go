package crypto

import (
	"github.com/decred/dcrd/chaincfg/chainhash"
	"golang.org/x/crypto/blake2b"
)

// Blake256 hashes data with the same Blake256 primitive Decred software
// commits to throughout via chainhash.Hash, grounded on
// routing/ann_validation.go's chainhash.HashB usage.
func Blake256(data []byte) []byte {
	return chainhash.HashB(data)
}

// Blake256Hasher implements receipt.Hasher over Blake256, used as the
// box-receipt content-address primitive.
type Blake256Hasher struct{}

// Hash implements receipt.Hasher.
func (Blake256Hasher) Hash(data []byte) []byte {
	return Blake256(data)
}

// Blake2bHasher implements receipt.Hasher over BLAKE2b-256, a second,
// independent hash primitive, so the receipt.Hasher collaborator is
// demonstrably swappable rather than hard-wired to one algorithm.
// internal/store does not use it: its keys are built from ids and
// transaction numbers, not hashes.
type Blake2bHasher struct{}

// Hash implements receipt.Hasher.
func (Blake2bHasher) Hash(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}
