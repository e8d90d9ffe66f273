// Package harvest computes what should happen to a transaction's
// reserved numbers once its outcome is known: recover an
// unused number back to the available set, burn one permanently, or
// mark one used without touching the registry at all. It never
// mutates a Context directly; it reports actions, and the caller
// applies them, so that harvester errors can be logged and left for a
// retry rather than silently eaten mid-computation.
package harvest

import (
	"github.com/wigggles/otxconsensus/consensus"
	"github.com/wigggles/otxconsensus/receipt"
)

// Reply is the outcome of the network round trip itself, independent
// of whether the notary went on to process the transaction.
type Reply int

const (
	ReplyFailure Reply = iota
	ReplySuccess
)

// TxnOutcome is what the notary reports happened to the transaction
// once a reply was received at all.
type TxnOutcome int

const (
	TxnUnknown TxnOutcome = iota
	TxnSuccess
	TxnFailure
)

// Outcome bundles the three inputs the harvest policy branches on.
type Outcome struct {
	Reply    Reply
	Txn      TxnOutcome
	Retrying bool
}

// PartyRole distinguishes which side of a multi-party transaction a
// Request's numbers belong to. It is only consulted for kinds where
// the two sides are harvested differently (paymentPlan); every other
// kind ignores it.
type PartyRole int

const (
	RolePayer PartyRole = iota
	RolePayee
)

// ActionKind is what should happen to a transaction number.
type ActionKind int

const (
	// ActionRecover returns the number to the available set.
	ActionRecover ActionKind = iota
	// ActionBurn permanently removes the number from the issued set.
	ActionBurn
	// ActionMarkUsed leaves the number issued-and-consumed, recording
	// only that no recovery should ever be attempted on it again.
	ActionMarkUsed
)

// Action is one harvester recommendation for a single number.
type Action struct {
	Number consensus.TransactionNumber
	Kind   ActionKind
}

// Apply carries out the action against ctx. ActionMarkUsed is a no-op at
// the registry level: "used" is ledger-layer bookkeeping, not a
// NumberRegistry state.
func (a Action) Apply(ctx *consensus.Context) error {
	switch a.Kind {
	case ActionRecover:
		return ctx.Recover(a.Number)
	case ActionBurn:
		return ctx.Close(a.Number)
	default:
		return nil
	}
}

// Result is everything a harvest call produces: the actions to apply,
// and whether the outcome left any number's fate genuinely undecided
// (txn == TxnUnknown on a path that otherwise branches on it). A
// caller seeing Ambiguous should surface "manual reconciliation may be
// required" rather than silently picking a side.
type Result struct {
	Actions   []Action
	Ambiguous bool
}

// Request names the numbers one harvest call is responsible for and
// the transaction kind/role that selects the policy to apply. Opening
// is always present; Closings holds zero, one, or two closing numbers
// depending on Kind. For smartContract, which has one opening per
// party, call Harvest once per party with that party's own Opening.
type Request struct {
	Kind     receipt.Kind
	Role     PartyRole
	Opening  consensus.TransactionNumber
	Closings []consensus.TransactionNumber
	Outcome  Outcome
}

// Harvest computes the actions a transaction's outcome implies for its
// reserved numbers, dispatched by kind.
func Harvest(req Request) Result {
	switch req.Kind {
	case receipt.KindProcessInbox, receipt.KindWithdrawal, receipt.KindDeposit,
		receipt.KindCancelCronItem, receipt.KindPayDividend:
		return singleOpening(req)
	case receipt.KindTransfer:
		return twoWayOpening(req, nil)
	case receipt.KindMarketOffer:
		return twoWayOpening(req, closerRule)
	case receipt.KindExchangeBasket:
		return unconditionalBurnOpening(req, closerRule)
	case receipt.KindPaymentPlan:
		return paymentPlan(req)
	case receipt.KindSmartContract:
		return unconditionalBurnOpening(req, closerRule)
	default:
		return Result{}
	}
}

// singleOpening implements the "opening is gone on success, recovered
// on failure" rule shared by processInbox, withdrawal, deposit,
// cancelCronItem, and payDividend.
func singleOpening(req Request) Result {
	if req.Outcome.Reply == ReplyFailure {
		return Result{Actions: []Action{{Number: req.Opening, Kind: ActionRecover}}}
	}
	return Result{}
}

// twoWayOpening implements the transfer/marketOffer opening rule: a
// reply failure recovers the opening outright; a reply success
// consumes it regardless of the eventual txn outcome, marked used on
// txn success and burned on txn failure. An unknown txn outcome after
// a reply success is genuinely ambiguous. closers, if non-nil, is
// applied to req.Closings using the shared closer rule.
func twoWayOpening(req Request, closers func(Request) []Action) Result {
	var actions []Action
	ambiguous := false

	switch {
	case req.Outcome.Reply == ReplyFailure:
		actions = append(actions, Action{Number: req.Opening, Kind: ActionRecover})
	case req.Outcome.Txn == TxnSuccess:
		actions = append(actions, Action{Number: req.Opening, Kind: ActionMarkUsed})
	case req.Outcome.Txn == TxnFailure:
		actions = append(actions, Action{Number: req.Opening, Kind: ActionBurn})
	default:
		ambiguous = true
	}

	if closers != nil {
		actions = append(actions, closers(req)...)
	}
	return Result{Actions: actions, Ambiguous: ambiguous}
}

// unconditionalBurnOpening implements the exchangeBasket/smartContract
// and paymentPlan-payer opening rule: burned unconditionally on a
// reply success, with no dependency on the txn outcome at all, and
// recovered on a reply failure.
func unconditionalBurnOpening(req Request, closers func(Request) []Action) Result {
	var actions []Action
	if req.Outcome.Reply == ReplyFailure {
		actions = append(actions, Action{Number: req.Opening, Kind: ActionRecover})
	} else {
		actions = append(actions, Action{Number: req.Opening, Kind: ActionBurn})
	}
	if closers != nil {
		actions = append(actions, closers(req)...)
	}
	return Result{Actions: actions}
}

// closerRule implements the closing-number policy shared by
// marketOffer, exchangeBasket, paymentPlan, and smartContract:
// recoverable on a reply failure or on a reply success with a txn
// failure, marked used on a txn success, and left untouched on a retry
// (a retry needs its closing numbers to still be there to reuse).
func closerRule(req Request) []Action {
	if req.Outcome.Retrying {
		return nil
	}

	var kind ActionKind
	switch {
	case req.Outcome.Reply == ReplyFailure, req.Outcome.Reply == ReplySuccess && req.Outcome.Txn == TxnFailure:
		kind = ActionRecover
	case req.Outcome.Txn == TxnSuccess:
		kind = ActionMarkUsed
	default:
		return nil
	}

	actions := make([]Action, len(req.Closings))
	for i, n := range req.Closings {
		actions[i] = Action{Number: n, Kind: kind}
	}
	return actions
}

// paymentPlan implements the four-number paymentPlan rule:
// the payer's opening is burned unconditionally on a reply success;
// the payee's opening is burned only on a txn success and otherwise
// recovered. Both sides share the ordinary closerRule for their
// closing number.
func paymentPlan(req Request) Result {
	if req.Role == RolePayee {
		return payeeOpening(req)
	}
	result := unconditionalBurnOpening(req, closerRule)
	result.Ambiguous = paymentPlanAmbiguous(req)
	return result
}

// payeeOpening implements paymentPlan's payee-opening rule: burned on
// a txn success, recovered otherwise (including a reply failure, where
// txn never reaches anything but its zero value).
func payeeOpening(req Request) Result {
	kind := ActionRecover
	if req.Outcome.Txn == TxnSuccess {
		kind = ActionBurn
	}
	actions := []Action{{Number: req.Opening, Kind: kind}}
	actions = append(actions, closerRule(req)...)
	return Result{Actions: actions, Ambiguous: paymentPlanAmbiguous(req)}
}

// paymentPlanAmbiguous reports whether a paymentPlan harvest leaves the
// closing number's fate genuinely undecided: a reply success with an
// unknown txn outcome, not a retry, is exactly the condition under
// which closerRule deliberately takes no action on the closing number.
// Manual reconciliation may be required until the txn outcome is
// eventually learned.
func paymentPlanAmbiguous(req Request) bool {
	return req.Outcome.Reply == ReplySuccess && req.Outcome.Txn == TxnUnknown && !req.Outcome.Retrying
}
