package verify

import (
	"github.com/wigggles/otxconsensus/consensus"
	"github.com/wigggles/otxconsensus/receipt"
)

// InboxReportItem is one entry of a stored balance receipt's inbox
// report: enough of a past live-inbox receipt to reconcile against the
// current one, without requiring the full receipt still be on hand.
type InboxReportItem struct {
	TransactionNum consensus.TransactionNumber
	ReferenceNum   uint64
	Kind           receipt.Kind
	Amount         int64
}

// StoredBalanceReceipt is a persisted, server-signed balance receipt
// together with the inbox report it was signed against.
type StoredBalanceReceipt struct {
	Statement   *BalanceStatement
	InboxReport []InboxReportItem
	Signature   consensus.Signature
	DateSigned  int64
}

// StoredTransactionReceipt is a persisted, server-signed plain
// transaction statement. It can postdate the last balance receipt
// because the two are not always signed together.
type StoredTransactionReceipt struct {
	Statement  *consensus.Statement
	DateSigned int64
}

// BalanceReceiptCheck reconciles a stored balance receipt against a
// live Context, the account's current inbox, and its balance. It
// reports the first failure and stops; callers must refuse
// to sign a new balance statement on any error until the underlying
// dispute is resolved.
func BalanceReceiptCheck(ctx *consensus.Context, signer consensus.Signer, key consensus.KeyRef,
	balanceReceipt *StoredBalanceReceipt, txnReceipt *StoredTransactionReceipt,
	inbox *receipt.Ledger, account Account) error {

	// Step 1: a stored plain transaction receipt can be newer than the
	// balance receipt (it may be signed against a different account),
	// in which case its issued set is the one to check the live
	// context against in step 3.
	issuedToCheck := balanceReceipt.Statement.Issued()
	if txnReceipt != nil && txnReceipt.DateSigned > balanceReceipt.DateSigned {
		issuedToCheck = txnReceipt.Statement.Issued()
	}

	// Step 2: verify the server's signature on the balance receipt
	// itself.
	if err := Statement(signer, balanceReceipt.Statement.Statement, balanceReceipt.Signature, key); err != nil {
		return err
	}

	// Step 3: numbers may have closed out since the receipt was
	// signed, but none may appear unannounced.
	for _, n := range ctx.Issued().Slice() {
		if !issuedToCheck.Contains(n) {
			return &consensus.MismatchError{Number: n, InStatement: false}
		}
	}

	// Step 4: reconcile the live inbox against the stored report.
	reported := make(map[consensus.TransactionNumber]InboxReportItem, len(balanceReceipt.InboxReport))
	var oldSum int64
	for _, item := range balanceReceipt.InboxReport {
		reported[item.TransactionNum] = item
		if receipt.IsBalanceAffecting(item.Kind) {
			oldSum += item.Amount
		}
	}

	var newSum, newOnlySum int64
	for _, r := range inbox.Live() {
		if !receipt.IsBalanceAffecting(r.Kind) {
			continue
		}
		amount := receipt.GetReceiptAmount(r)
		newSum += amount
		if _, ok := reported[r.TransactionNum]; !ok {
			newOnlySum += amount
		}
	}

	delta := newSum - oldSum
	if balanceReceipt.Statement.Amount+delta != account.Balance() {
		return &consensus.AmountMismatchError{
			Transaction: 0,
			Expected:    balanceReceipt.Statement.Amount + delta,
			Got:         account.Balance(),
		}
	}
	if delta != newOnlySum {
		return &consensus.AmountMismatchError{
			Transaction: 0,
			Expected:    newOnlySum,
			Got:         delta,
		}
	}

	// Step 5: a cron receipt reappearing against a reference number
	// the report already closed with a finalReceipt is server
	// misbehavior, not a reconciliation gap.
	closedReferences := make(map[uint64]struct{})
	for _, item := range balanceReceipt.InboxReport {
		if item.Kind == receipt.KindFinalReceipt {
			closedReferences[item.ReferenceNum] = struct{}{}
		}
	}
	for _, r := range inbox.Live() {
		if r.Kind != receipt.KindMarketReceipt && r.Kind != receipt.KindPaymentReceipt {
			continue
		}
		if _, closed := closedReferences[r.ReferenceNum]; closed {
			return &consensus.ShadowedCronReceiptError{ReferenceNum: r.ReferenceNum}
		}
	}

	return nil
}
