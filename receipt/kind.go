// Package receipt models one ledger entry in the consensus protocol:
// the receipt/box-receipt model referenced by statement verification
// and the harvester.
package receipt

// Kind is the single exhaustive tag covering both what the source
// split across a receipt-kind enum and an originating-transaction-type
// enum. They answer the same question, "what is this?", from two
// angles that the harvester and the statement verifier both need, so
// one tag serves both call sites instead of two overlapping ones.
type Kind int

const (
	// Receipt-kind values: what was actually recorded in a box.
	KindPending Kind = iota
	KindChequeReceipt
	KindVoucherReceipt
	KindTransferReceipt
	KindMarketReceipt
	KindPaymentReceipt
	KindFinalReceipt
	KindBasketReceipt
	KindInstrumentNotice
	KindNotice
	KindBlank
	KindSuccessNotice
	KindReplyNotice
	KindAcceptPending

	// Transaction-kind values: what kind of request produced the
	// receipt above. Used as the harvester policy key and as the
	// statement verifier's target_txn.kind.
	KindProcessInbox
	KindWithdrawal
	KindDeposit
	KindPayDividend
	KindCancelCronItem
	KindTransfer
	KindMarketOffer
	KindPaymentPlan
	KindSmartContract
	KindExchangeBasket
)

func (k Kind) String() string {
	switch k {
	case KindPending:
		return "pending"
	case KindChequeReceipt:
		return "chequeReceipt"
	case KindVoucherReceipt:
		return "voucherReceipt"
	case KindTransferReceipt:
		return "transferReceipt"
	case KindMarketReceipt:
		return "marketReceipt"
	case KindPaymentReceipt:
		return "paymentReceipt"
	case KindFinalReceipt:
		return "finalReceipt"
	case KindBasketReceipt:
		return "basketReceipt"
	case KindInstrumentNotice:
		return "instrumentNotice"
	case KindNotice:
		return "notice"
	case KindBlank:
		return "blank"
	case KindSuccessNotice:
		return "successNotice"
	case KindReplyNotice:
		return "replyNotice"
	case KindAcceptPending:
		return "acceptPending"
	case KindProcessInbox:
		return "processInbox"
	case KindWithdrawal:
		return "withdrawal"
	case KindDeposit:
		return "deposit"
	case KindPayDividend:
		return "payDividend"
	case KindCancelCronItem:
		return "cancelCronItem"
	case KindTransfer:
		return "transfer"
	case KindMarketOffer:
		return "marketOffer"
	case KindPaymentPlan:
		return "paymentPlan"
	case KindSmartContract:
		return "smartContract"
	case KindExchangeBasket:
		return "exchangeBasket"
	default:
		return "unknown"
	}
}

// OriginKind identifies which transaction type originated a receipt,
// the one place the source's two parallel enums are structurally
// distinct enough to keep separate.
type OriginKind int

const (
	OriginWithdrawal OriginKind = iota
	OriginDeposit
	OriginTransfer
	OriginMarketOffer
	OriginPaymentPlan
	OriginSmartContract
	OriginProcessInbox
	OriginPayDividend
	OriginCancelCronItem
	OriginExchangeBasket
)

// Origin records the transaction number and kind that a receipt
// traces back to.
type Origin struct {
	Number TransactionNumber
	Kind   OriginKind
}
