// Package store implements the Storage collaborator: the
// exists/read/write trio the core uses for the Context blob per
// (localId, remoteId) pair, the per-account "success" receipt file,
// and per-receipt full-form files addressed by transaction number.
// Trimmed from a wallet controller's broad surface (see
// lnwallet/interface.go) down to the handful of operations this
// module actually needs.
package store

import "fmt"

// Storage is the read/write/exists collaborator the core consensus
// package depends on. Paths are logical keys, not necessarily
// filesystem paths; the leveldb-backed implementation in this package
// treats them as opaque byte-string keys.
type Storage interface {
	Exists(path string) (bool, error)
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
}

// ErrNotFound is returned by Read when path has never been written.
var ErrNotFound = fmt.Errorf("store: not found")

// ContextPath returns the storage key for the Context blob between
// localID and remoteID.
func ContextPath(localID, remoteID string) string {
	return fmt.Sprintf("context/%s/%s", localID, remoteID)
}

// SuccessReceiptPath returns the storage key for the per-account
// success-receipt file: {notary}/{account}.success, relative to the
// store's own root (the key carries no receipt-root prefix).
func SuccessReceiptPath(notary, account string) string {
	return fmt.Sprintf("%s/%s.success", notary, account)
}

// FullReceiptPath returns the storage key for a per-receipt full-form
// file: {box}/{notary}/{account}/{transaction_num}.
func FullReceiptPath(box, notary, account string, txn uint64) string {
	return fmt.Sprintf("%s/%s/%s/%d", box, notary, account, txn)
}
