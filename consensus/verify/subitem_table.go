package verify

import "github.com/wigggles/otxconsensus/receipt"

// subItemRule names the receipt kinds a balance-statement sub-item of
// a given transaction kind may match, separately for the inbox and
// outbox sides: a lookup table instead of the nested per-kind
// switches that falling through two parallel enums would otherwise
// require, the same treatment `routing/unified_policies.go` gives
// per-channel policy selection.
type subItemRule struct {
	inbox  []receipt.Kind
	outbox []receipt.Kind
}

// subItemRules is deliberately complete over every balance-affecting
// transaction kind, even though only transfer has a fully worked
// example to build from. The unworked entries are a judgment call,
// written out explicitly in this table rather than a guess baked in
// silently.
var subItemRules = map[receipt.Kind]subItemRule{
	receipt.KindTransfer: {
		outbox: []receipt.Kind{receipt.KindPending},
		inbox:  []receipt.Kind{receipt.KindPending, receipt.KindTransferReceipt},
	},
	receipt.KindMarketOffer: {
		outbox: []receipt.Kind{receipt.KindPending},
		inbox:  []receipt.Kind{receipt.KindPending, receipt.KindMarketReceipt},
	},
	receipt.KindPaymentPlan: {
		outbox: []receipt.Kind{receipt.KindPending},
		inbox:  []receipt.Kind{receipt.KindPending, receipt.KindPaymentReceipt},
	},
	receipt.KindSmartContract: {
		outbox: []receipt.Kind{receipt.KindPending},
		inbox:  []receipt.Kind{receipt.KindPending, receipt.KindPaymentReceipt},
	},
	receipt.KindExchangeBasket: {
		outbox: []receipt.Kind{receipt.KindPending},
		inbox:  []receipt.Kind{receipt.KindPending, receipt.KindBasketReceipt},
	},
	receipt.KindPayDividend: {
		outbox: []receipt.Kind{receipt.KindPending},
		inbox:  []receipt.Kind{receipt.KindPending, receipt.KindPaymentReceipt},
	},
	receipt.KindWithdrawal: {
		outbox: []receipt.Kind{receipt.KindChequeReceipt, receipt.KindVoucherReceipt},
	},
	receipt.KindDeposit: {
		inbox: []receipt.Kind{receipt.KindPending},
	},
	receipt.KindProcessInbox: {
		inbox: []receipt.Kind{receipt.KindFinalReceipt},
	},
	receipt.KindCancelCronItem: {
		inbox: []receipt.Kind{receipt.KindFinalReceipt},
	},
}

// expectedKinds returns the receipt kinds txnKind permits on the given
// side, or nil if txnKind has no rule (treated as "permits nothing").
func expectedKinds(txnKind receipt.Kind, side Side) []receipt.Kind {
	rule, ok := subItemRules[txnKind]
	if !ok {
		return nil
	}
	if side == SideOutbox {
		return rule.outbox
	}
	return rule.inbox
}

// kindPermitted reports whether got is one of the kinds txnKind
// permits on side.
func kindPermitted(txnKind receipt.Kind, side Side, got receipt.Kind) bool {
	for _, k := range expectedKinds(txnKind, side) {
		if k == got {
			return true
		}
	}
	return false
}
