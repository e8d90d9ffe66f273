// Package verify cross-checks signed Statements against a live
// Context, and (for balance statements) against an inbox, outbox and
// account. Every function here is read-only: none of them
// mutate the Context or Ledgers they're handed.
package verify

import "github.com/wigggles/otxconsensus/consensus"

// Transaction checks that stmt is the statement a Context would sign
// after applying excluded/included as a delta to its current issued
// set. The statement is signed after a transaction
// completes, so it reflects the post-transaction state; excluded and
// included let the caller apply the same lens before comparing.
func Transaction(ctx *consensus.Context, stmt *consensus.Statement, excluded, included consensus.NumberSet) error {
	effective := ctx.Issued()

	for n := range included {
		if effective.Contains(n) {
			return &consensus.AlreadyPresentError{Number: n}
		}
		effective[n] = struct{}{}
	}
	for n := range excluded {
		if !effective.Contains(n) {
			return &consensus.NotFoundError{Number: n}
		}
		delete(effective, n)
	}

	return compareIssued(effective, stmt.Issued())
}

// compareIssued reports one asymmetry between a live effective set
// and a statement's claimed issued set, if any: the lowest number
// missing from the statement if there is one, otherwise the lowest
// number only the statement claims. No net
// addition is allowed on either side. A number present in effective
// but absent from the statement is the statement trying to shrink the
// obligation set without announcing it; a number the statement claims
// that effective doesn't have is the statement growing it unannounced.
// Both are rejected, reported with different InStatement values so the
// caller knows which side has the excess number.
func compareIssued(effective, statementIssued consensus.NumberSet) error {
	for _, n := range effective.Slice() {
		if !statementIssued.Contains(n) {
			return &consensus.MismatchError{Number: n, InStatement: false}
		}
	}
	for _, n := range statementIssued.Slice() {
		if !effective.Contains(n) {
			return &consensus.MismatchError{Number: n, InStatement: true}
		}
	}
	return nil
}
