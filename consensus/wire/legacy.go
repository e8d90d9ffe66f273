// Package wire holds small adaptors that translate between serialized
// Context shapes of different versions, easing migration of
// already-persisted relationships as the wire form gains fields.
package wire

// ServerExtensionDefaults are the ServerContext extension fields a
// pre-v2 serialized Context never had. UpgradeServerExtension fills
// them in so that a v1 blob loads cleanly as a v2 ServerContext
// instead of requiring every reader to special-case the old version.
type ServerExtensionDefaults struct {
	ServerID                string
	HighestTransactionNumber uint64
	TentativeRequestNumbers  []uint64
	Revision                 uint64
	AdminPassword            string
	AdminAttempted           bool
	AdminSuccess             bool
}

// UpgradeServerExtension is an adapted version of the defaulting a v1
// ServerContext blob needs to become a v2 one. It is a migration
// convenience, not a correctness requirement: a freshly constructed
// ServerContext already starts from these same defaults.
func UpgradeServerExtension(serverID string) ServerExtensionDefaults {
	return ServerExtensionDefaults{
		ServerID: serverID,
	}
}
