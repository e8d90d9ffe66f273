package consensus

import (
	"context"
	"fmt"
)

// Connection returns the network collaborator this ServerContext sends
// requests through. Valid only on the ServerContext arm.
func (c *Context) Connection() (NetworkCollaborator, error) {
	if c.role != RoleServer {
		return nil, errWrongRole(RoleServer, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.server.connection, nil
}

// Tentative returns a copy of the tentative number set: only the
// ServerContext arm ever populates this set, numbers the notary has
// offered but this client has not yet folded into its issued set via
// AcceptIssued. See DESIGN.md's "tentative numbers" decision for why
// ClientContext never touches it.
func (c *Context) Tentative() (NumberSet, error) {
	if c.role != RoleServer {
		return nil, errWrongRole(RoleServer, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numbers.Tentative(), nil
}

// AddTentative records n as offered-but-unacknowledged. Numbers at or
// below the current watermark are silently dropped (replay defense).
func (c *Context) AddTentative(n TransactionNumber) error {
	if c.role != RoleServer {
		return errWrongRole(RoleServer, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.numbers.AddTentative(n)
	return nil
}

// RemoveTentative drops n from the tentative set, typically once it
// has been folded into issued via AcceptIssued.
func (c *Context) RemoveTentative(n TransactionNumber) error {
	if c.role != RoleServer {
		return errWrongRole(RoleServer, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.numbers.RemoveTentative(n)
	return nil
}

// UpdateHighest advances the watermark past every number in s that
// exceeds it, and reports any numbers that didn't (a replay attempt).
func (c *Context) UpdateHighest(s NumberSet) (good, bad NumberSet, smallestBad TransactionNumber) {
	if c.role != RoleServer {
		return nil, nil, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numbers.UpdateHighest(s)
}

// AdminPassword, AdminAttempted, AdminSuccess, and Revision expose the
// notary-admin bookkeeping this ServerContext carries on behalf of its
// client.
func (c *Context) AdminPassword() (string, error) {
	if c.role != RoleServer {
		return "", errWrongRole(RoleServer, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.server.adminPassword, nil
}

func (c *Context) SetAdminPassword(password string) error {
	if c.role != RoleServer {
		return errWrongRole(RoleServer, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.server.adminPassword = password
	return nil
}

func (c *Context) AdminAttempted() (bool, error) {
	if c.role != RoleServer {
		return false, errWrongRole(RoleServer, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.server.adminAttempted, nil
}

func (c *Context) AdminSuccess() (bool, error) {
	if c.role != RoleServer {
		return false, errWrongRole(RoleServer, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.server.adminSuccess, nil
}

// SetAdminOutcome records the result of one admin-login attempt.
func (c *Context) SetAdminOutcome(success bool) error {
	if c.role != RoleServer {
		return errWrongRole(RoleServer, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.server.adminAttempted = true
	c.server.adminSuccess = success
	return nil
}

func (c *Context) Revision() (uint64, error) {
	if c.role != RoleServer {
		return 0, errWrongRole(RoleServer, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.server.revision, nil
}

func (c *Context) SetRevision(rev uint64) error {
	if c.role != RoleServer {
		return errWrongRole(RoleServer, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.server.revision = rev
	return nil
}

// PingNotary sends message to the notary over this ServerContext's
// connection and returns the outcome. The network round trip runs
// with only messageMu held; mu is never taken here. PingNotary does
// not apply anything from the reply to the Context (nymbox hash,
// revision and the rest are left as they were): the outcome is
// returned to the caller unchanged.
func (c *Context) PingNotary(ctx context.Context, message []byte) (SendOutcome, error) {
	if c.role != RoleServer {
		return SendOutcome{}, errWrongRole(RoleServer, c.role)
	}

	c.server.messageMu.Lock()
	defer c.server.messageMu.Unlock()

	conn := c.server.connection
	if conn == nil {
		return SendOutcome{}, fmt.Errorf("consensus: server context has no connection configured")
	}

	outcome, err := conn.Send(ctx, message)
	if err != nil {
		return outcome, err
	}

	if outcome.Status != StatusValidReply {
		logger.Warnf("ping to notary %s from %s: outcome %v, treating as unknown",
			c.notaryID, c.localID, outcome.Status)
	}

	return outcome, nil
}
