// Package proto defines the wire envelope exchanged over the gRPC
// transport, hand-marshaled via the JSON codec registered in
// internal/transport rather than protoc-generated structs. This
// module has exactly one RPC method and no cross-language client, so
// a generation step buys nothing.
package proto

// Envelope is the single message type both directions of the unary
// Send RPC exchange. Requests and replies both carry their bytes in
// Payload; the reply body has no separate field.
type Envelope struct {
	// Payload is the caller-supplied message bytes passed to the
	// network collaborator's Send, or the matching reply body.
	Payload []byte `json:"payload,omitempty"`

	// Status is left at its zero value in both directions: the Server
	// in internal/transport never sets it, and the Client classifies
	// the outcome from the RPC error instead.
	Status int32 `json:"status,omitempty"`
}
