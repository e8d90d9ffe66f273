package consensus

import "fmt"

// errWrongRole is returned by the role-specific accessors below when
// called against a Context built with the other role.
func errWrongRole(want Role, got Role) error {
	return fmt.Errorf("consensus: method requires a %s context, have a %s context", want, got)
}

// OpenCronItems returns a copy of the set of transaction numbers this
// ClientContext has reserved for recurring (cron-driven) payments that
// have not yet run. Valid only on the ClientContext arm.
func (c *Context) OpenCronItems() (NumberSet, error) {
	if c.role != RoleClient {
		return nil, errWrongRole(RoleClient, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.openCronItems.Clone(), nil
}

// AddOpenCronItem records n as reserved for a not-yet-run recurring
// payment, so the harvester and audit logic know not to treat it as
// simply idle.
func (c *Context) AddOpenCronItem(n TransactionNumber) error {
	if c.role != RoleClient {
		return errWrongRole(RoleClient, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.client.openCronItems[n] = struct{}{}
	return nil
}

// RemoveOpenCronItem clears n's reservation, once the recurring item
// has run or been cancelled.
func (c *Context) RemoveOpenCronItem(n TransactionNumber) error {
	if c.role != RoleClient {
		return errWrongRole(RoleClient, c.role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.client.openCronItems, n)
	return nil
}
