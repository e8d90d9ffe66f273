package consensus

import (
	"context"
	"sync"

	goerrors "github.com/go-errors/errors"
)

// Role distinguishes the two arms of the Context variant: a single
// Context type holds both arms' shared state, and dispatches the few
// methods that differ by checking Role rather than through virtual
// dispatch.
type Role int

const (
	// RoleClient marks a Context as a ClientContext: the server's view
	// of one client relationship.
	RoleClient Role = iota
	// RoleServer marks a Context as a ServerContext: the client's view
	// of its relationship with one notary.
	RoleServer
)

func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleServer:
		return "server"
	default:
		return "unknown"
	}
}

// SendStatus classifies the outcome of a network collaborator send.
type SendStatus int

const (
	// StatusTimeout means no reply was received before the deadline.
	StatusTimeout SendStatus = iota
	// StatusInvalidReply means a reply arrived but failed to validate
	// (bad signature, malformed envelope, ...).
	StatusInvalidReply
	// StatusValidReply means a reply arrived and validated.
	StatusValidReply
)

// SendOutcome is what the network collaborator returns for one
// request/reply exchange.
type SendOutcome struct {
	Status SendStatus
	Reply  []byte
}

// NetworkCollaborator is the external collaborator a ServerContext
// uses to talk to its notary. The core treats Timeout and
// InvalidReply as "outcome unknown"; callers must not invoke the
// harvester until Status == StatusValidReply or they have some other
// definitive signal.
type NetworkCollaborator interface {
	Send(ctx context.Context, message []byte) (SendOutcome, error)
}

// clientExtra holds the fields unique to a ClientContext.
type clientExtra struct {
	openCronItems NumberSet
}

// serverExtra holds the fields unique to a ServerContext. highest and
// tentative numbers live in the shared NumberRegistry. Tentative
// numbers are only ever populated on the ServerContext arm, per the
// "tentative numbers" decision in DESIGN.md; highest advances on either
// arm whenever a number enters issued, but only the ServerContext
// extension persists it.
type serverExtra struct {
	connection     NetworkCollaborator
	adminPassword  string
	adminAttempted bool
	adminSuccess   bool
	revision       uint64

	// messageMu guards a single synchronous request/reply exchange.
	// It is strictly finer-grained than the Context's own mu and must
	// never be acquired while mu is held.
	messageMu sync.Mutex
}

// Context is the per-(localParty, remoteParty, notary) consensus
// object. It is the sole owner of its NumberRegistry;
// nothing else in this module holds a mutable reference to that
// registry's state. All mutating methods acquire mu; read methods that
// return a copy acquire it only briefly.
type Context struct {
	mu sync.Mutex

	localID, remoteID, notaryID string
	numbers                     *NumberRegistry
	requestNumber               RequestNumber
	acknowledgedReplies         map[RequestNumber]struct{}
	localNymboxHash             []byte
	remoteNymboxHash            []byte

	role   Role
	client *clientExtra
	server *serverExtra
}

// NewClientContext constructs a ClientContext: the server's view of
// one client relationship.
func NewClientContext(localID, remoteID, notaryID string) *Context {
	return &Context{
		localID:             localID,
		remoteID:            remoteID,
		notaryID:            notaryID,
		numbers:             NewNumberRegistry(),
		acknowledgedReplies: make(map[RequestNumber]struct{}),
		role:                RoleClient,
		client:              &clientExtra{openCronItems: make(NumberSet)},
	}
}

// NewServerContext constructs a ServerContext: the client's view of
// its relationship with the given notary, talking over conn.
func NewServerContext(localID, remoteID, notaryID string, conn NetworkCollaborator) *Context {
	return &Context{
		localID:             localID,
		remoteID:            remoteID,
		notaryID:            notaryID,
		numbers:             NewNumberRegistry(),
		acknowledgedReplies: make(map[RequestNumber]struct{}),
		role:                RoleServer,
		server:              &serverExtra{connection: conn},
	}
}

// Role reports whether this is a ClientContext or ServerContext.
func (c *Context) Role() Role { return c.role }

// IsClient reports whether this Context is the ClientContext arm.
func (c *Context) IsClient() bool { return c.role == RoleClient }

// IsServer reports whether this Context is the ServerContext arm.
func (c *Context) IsServer() bool { return c.role == RoleServer }

// LocalID, RemoteID, and NotaryID identify the two parties and the
// notary this relationship is scoped to.
func (c *Context) LocalID() string  { return c.localID }
func (c *Context) RemoteID() string { return c.remoteID }
func (c *Context) NotaryID() string { return c.notaryID }

// Issued returns a copy of the registry's issued set.
func (c *Context) Issued() NumberSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numbers.Issued()
}

// Available returns a copy of the registry's available set.
func (c *Context) Available() NumberSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numbers.Available()
}

// Highest returns the registry's highest watermark.
func (c *Context) Highest() TransactionNumber {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numbers.Highest()
}

// HasOpenTransactions reports whether any issued number is currently
// unavailable.
func (c *Context) HasOpenTransactions() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numbers.HasOpenTransactions()
}

// Issue adds n to the registry's issued and available sets.
func (c *Context) Issue(n TransactionNumber) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numbers.Issue(n)
}

// AcceptIssued adds every number in s to the issued and available
// sets, skipping numbers already present. It returns the count
// actually added.
func (c *Context) AcceptIssued(s NumberSet) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numbers.AcceptIssued(s)
}

// Consume removes n from the available set, leaving it issued.
func (c *Context) Consume(n TransactionNumber) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numbers.Consume(n)
}

// Close removes n from both the issued and available sets.
func (c *Context) Close(n TransactionNumber) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numbers.Close(n)
}

// Recover restores n to the available set. Idempotent; the primary
// entry point ManagedNumber and the Harvester use to undo an
// optimistic consumption.
func (c *Context) Recover(n TransactionNumber) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numbers.Recover(n)
}

// SelectAvailable picks `count` numbers from the current available
// set without consuming them.
func (c *Context) SelectAvailable(count int) ([]TransactionNumber, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SelectNumbers(c.numbers.available, count)
}

// Audit runs the registry's invariant checks. A non-nil return is
// fatal to this Context instance: the caller must destroy it and
// reload from the last signed receipt.
func (c *Context) Audit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.numbers.Audit(); err != nil {
		// InvariantViolated is fatal to this Context instance: capture
		// a stack trace alongside the registry dump so the operator
		// diagnosing the corruption doesn't also have to reconstruct
		// which call path reached here.
		trace := goerrors.Wrap(err, 1).ErrorStack()
		logger.Errorf("context %s/%s: invariant violated, state follows:\n%s\n%s",
			c.localID, c.remoteID, c.numbers.DebugString(), trace)
		return err
	}
	return nil
}

// RequestNumber returns the current outbound request number.
func (c *Context) RequestNumber() RequestNumber {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestNumber
}

// NextRequestNumber advances and returns the new outbound request
// number, one higher than the last.
func (c *Context) NextRequestNumber() RequestNumber {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestNumber++
	return c.requestNumber
}

// AcknowledgeReply records that the local party has seen the remote's
// reply to request number n.
func (c *Context) AcknowledgeReply(n RequestNumber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acknowledgedReplies[n] = struct{}{}
}

// ForgetAcknowledgement drops n from the acknowledged-replies set,
// once the remote party confirms it has seen our acknowledgement.
func (c *Context) ForgetAcknowledgement(n RequestNumber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.acknowledgedReplies, n)
}

// AcknowledgedReplies returns the set of request numbers the local
// party has seen a reply for.
func (c *Context) AcknowledgedReplies() map[RequestNumber]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[RequestNumber]struct{}, len(c.acknowledgedReplies))
	for n := range c.acknowledgedReplies {
		out[n] = struct{}{}
	}
	return out
}

// LocalNymboxHash and RemoteNymboxHash return the last-known content
// hashes of each side's nymbox, used to detect divergence out of band
// from the number sets themselves.
func (c *Context) LocalNymboxHash() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.localNymboxHash...)
}

func (c *Context) RemoteNymboxHash() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.remoteNymboxHash...)
}

// SetLocalNymboxHash and SetRemoteNymboxHash update the recorded
// hashes after a successful exchange.
func (c *Context) SetLocalNymboxHash(h []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.localNymboxHash = append([]byte(nil), h...)
}

func (c *Context) SetRemoteNymboxHash(h []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remoteNymboxHash = append([]byte(nil), h...)
}

// BuildStatement captures the current state in an unsigned Statement: a snapshot
// of the issued and available sets as they stand right now, under
// party/notary id.
func (c *Context) BuildStatement() *Statement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return BuildStatement(c.notaryID, c.localID, c.numbers.Issued(), c.numbers.Available())
}
