// Package testharness provides an in-process notary/client rig, used
// by the otxctl demo CLI (cmd/otxctl)
// instead of standing up real gRPC servers. Trimmed from
// lntest.NetworkHarness's active-node map / mutex / SetUp shape down
// to a single notary-client pair.
package testharness

import (
	"context"
	"sync"

	"github.com/wigggles/otxconsensus/consensus"
)

// Harness wires a ClientContext (the notary's view of one client) to a
// ServerContext (that client's view of the notary) over an in-memory
// NetworkCollaborator, so request/reply round trips exercise the real
// Context code paths without any actual network I/O.
type Harness struct {
	mu sync.Mutex

	// Notary is the server-side view: a ClientContext tracking the
	// client's issued/available numbers.
	Notary *consensus.Context

	// Client is the client-side view: a ServerContext tracking its
	// relationship with the notary.
	Client *consensus.Context

	// Handler processes a message the client sends to the notary and
	// returns the notary's reply. Tests set this to whatever exchange
	// they want to exercise; New installs a handler that echoes the
	// message back (a zero-value Harness has a nil Handler).
	Handler func(ctx context.Context, message []byte) ([]byte, error)
}

// New returns a Harness with a fresh ClientContext/ServerContext pair
// for the given party/notary ids. The ServerContext's connection is
// wired to the harness itself, so every PingNotary call routes through
// Handler synchronously.
func New(localID, remoteID, notaryID string) *Harness {
	h := &Harness{}
	h.Notary = consensus.NewClientContext(notaryID, localID, notaryID)
	h.Client = consensus.NewServerContext(localID, notaryID, notaryID, h)
	h.Handler = func(_ context.Context, message []byte) ([]byte, error) {
		return message, nil
	}
	return h
}

// Send implements consensus.NetworkCollaborator by calling Handler
// directly and reporting StatusValidReply on success.
func (h *Harness) Send(ctx context.Context, message []byte) (consensus.SendOutcome, error) {
	h.mu.Lock()
	handler := h.Handler
	h.mu.Unlock()

	reply, err := handler(ctx, message)
	if err != nil {
		return consensus.SendOutcome{Status: consensus.StatusInvalidReply}, nil
	}
	return consensus.SendOutcome{Status: consensus.StatusValidReply, Reply: reply}, nil
}

// IssueTo moves the given transaction numbers from the notary's
// perspective into both Contexts: the notary's ClientContext issues
// them, and the client's ServerContext accepts them, mirroring the
// tentative-then-accepted handoff collapsed into one synchronous call
// for test setup convenience.
func (h *Harness) IssueTo(numbers ...consensus.TransactionNumber) error {
	accepted := consensus.NewNumberSet()
	for _, n := range numbers {
		if err := h.Notary.Issue(n); err != nil {
			return err
		}
		accepted[n] = struct{}{}
	}
	h.Client.AcceptIssued(accepted)
	return nil
}
