// Package adminauth gives ServerContext's admin_password field
// concrete, exercised semantics: the password becomes the root key of
// a minted macaroon, and admin_attempted/admin_success record whether
// the last macaroon presented against that root key verified.
package adminauth

import (
	"fmt"

	"github.com/wigggles/otxconsensus/consensus"
	"gopkg.in/macaroon-bakery.v2/bakery/checkers"
	"gopkg.in/macaroon.v2"
)

// adminCaveatNamespace names the one first-party caveat every minted admin
// macaroon carries: it scopes the macaroon to the relationship it was
// minted for, so a macaroon minted for one notary can't be replayed
// against another.
const adminCaveatNamespace = "otxconsensus-notary"

// MintAdminMacaroon derives a macaroon from ctx's admin password,
// scoped to notaryID, for the client to present on future admin
// requests.
func MintAdminMacaroon(ctx *consensus.Context, notaryID string) (*macaroon.Macaroon, error) {
	password, err := ctx.AdminPassword()
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("adminauth: context has no admin password set")
	}

	m, err := macaroon.New([]byte(password), []byte(notaryID), notaryID, macaroon.LatestVersion)
	if err != nil {
		return nil, fmt.Errorf("adminauth: minting macaroon: %w", err)
	}

	caveat := checkers.Condition(adminCaveatNamespace, notaryID)
	if err := m.AddFirstPartyCaveat([]byte(caveat)); err != nil {
		return nil, fmt.Errorf("adminauth: adding scope caveat: %w", err)
	}

	return m, nil
}

// VerifyAdminMacaroon checks that m was minted from ctx's current admin
// password and scoped to notaryID, and records the outcome on ctx via
// SetAdminOutcome.
func VerifyAdminMacaroon(ctx *consensus.Context, notaryID string, m *macaroon.Macaroon) error {
	password, err := ctx.AdminPassword()
	if err != nil {
		return err
	}

	wantCaveat := checkers.Condition(adminCaveatNamespace, notaryID)
	verifyErr := m.Verify([]byte(password), func(caveat string) error {
		if caveat != wantCaveat {
			return fmt.Errorf("adminauth: unrecognized caveat %q", caveat)
		}
		return nil
	}, nil)

	if setErr := ctx.SetAdminOutcome(verifyErr == nil); setErr != nil {
		return setErr
	}
	return verifyErr
}
