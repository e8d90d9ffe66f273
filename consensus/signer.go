package consensus

// Signature is an opaque, collaborator-produced signature over some
// payload. Its shape is up to the Signer implementation; the core only
// ever round-trips it.
type Signature []byte

// KeyRef identifies a signing key to the Signer collaborator without
// exposing key material to the core.
type KeyRef string

// Signer is the signing collaborator consumed by the core.
// The core never sees key material: it only ever passes a KeyRef
// through to whichever concrete signer (e.g. a secp256k1-backed one)
// is wired in.
type Signer interface {
	Sign(payload []byte, key KeyRef) (Signature, error)
	Verify(payload []byte, sig Signature, key KeyRef) bool
}
