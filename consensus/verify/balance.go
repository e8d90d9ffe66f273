package verify

import (
	"fmt"

	"github.com/wigggles/otxconsensus/consensus"
	"github.com/wigggles/otxconsensus/receipt"
)

// Side distinguishes a balance-statement sub-item's box. The source
// infers this from a sub-item's kind and amount sign; resolved here by
// carrying it explicitly on the sub-item instead, see DESIGN.md's
// "sub-item box tag" decision.
type Side int

const (
	SideInbox Side = iota
	SideOutbox
)

// SubItem is one balance-affecting entry a BalanceStatement accounts
// for: a transaction number used to look the receipt up in its box,
// the opening number it should trace back to, its reference number,
// and the signed amount the statement's signer claims for it.
// TransactionNum and Origin coincide for a receipt
// that closes its own opening transaction (e.g. a withdrawal); they
// differ for a multi-party operation like a transfer, where the
// inbox and outbox each get their own box-local transaction number but
// both must trace back to the same opening number.
type SubItem struct {
	TransactionNum consensus.TransactionNumber
	Origin         consensus.TransactionNumber
	ReferenceNum   uint64
	Side           Side
	TxnKind        receipt.Kind
	Amount         int64
}

// outboxSentinel is the placeholder transaction number a client uses
// for its own outbox sub-item when it signs a statement before
// learning the server-assigned outbox number.
const outboxSentinel = consensus.TransactionNumber(1)

// BalanceStatement extends a transaction Statement with the account
// balance it commits to and the sub-items explaining how it got there.
type BalanceStatement struct {
	*consensus.Statement
	Amount   int64
	SubItems []SubItem
}

// NewBalanceStatement builds a BalanceStatement over a base
// transaction statement.
func NewBalanceStatement(base *consensus.Statement, amount int64, subItems []SubItem) *BalanceStatement {
	return &BalanceStatement{Statement: base, Amount: amount, SubItems: subItems}
}

// Account is the core's read-only view of an account: a
// balance and an instrument id, nothing else.
type Account interface {
	Balance() int64
	InstrumentID() string
}

// TargetTransaction describes the transaction a balance statement is
// being signed for, used only to decide the §4.3.2 step 5 exclusion.
type TargetTransaction struct {
	TransactionNum consensus.TransactionNumber
	Kind           receipt.Kind
}

// keepsOpeningAlive is the set of transaction kinds whose opening
// number survives a successful statement:
// transfer, marketOffer, paymentPlan, and smartContract keep going
// after this step (the obligation isn't actually closed yet), while
// every other kind's target number gets excluded from the comparison
// because it really is done.
func keepsOpeningAlive(k receipt.Kind) bool {
	switch k {
	case receipt.KindTransfer, receipt.KindMarketOffer, receipt.KindPaymentPlan, receipt.KindSmartContract:
		return true
	default:
		return false
	}
}

// Balance cross-checks a BalanceStatement against a live Context, the
// account's current inbox/outbox, its balance, and a proposed
// adjustment. outboxNumHint supplies the server-assigned
// outbox transaction number when a sub-item uses the sentinel `1`
// (Scenario C).
func Balance(ctx *consensus.Context, stmt *BalanceStatement, adjustment int64,
	inbox, outbox *receipt.Ledger, account Account, target *TargetTransaction,
	excluded consensus.NumberSet, outboxNumHint consensus.TransactionNumber) error {

	// Step 1: balance + adjustment must equal the statement's claimed
	// amount.
	if account.Balance()+adjustment != stmt.Amount {
		return &consensus.AmountMismatchError{
			Transaction: 0,
			Expected:    stmt.Amount,
			Got:         account.Balance() + adjustment,
		}
	}

	inboxCount, outboxCount := 0, 0

	// Steps 2-4: every sub-item must resolve to a receipt that agrees
	// on reference number, origin, amount and kind; nothing may be
	// omitted.
	for _, item := range stmt.SubItems {
		ledger := inbox
		boxName := "inbox"
		if item.Side == SideOutbox {
			ledger = outbox
			boxName = "outbox"
			outboxCount++
		} else {
			inboxCount++
		}

		lookupNum := item.TransactionNum
		if item.Side == SideOutbox && item.TransactionNum == outboxSentinel {
			lookupNum = outboxNumHint
		}

		r, ok := ledger.ByTransactionNum(lookupNum)
		if !ok {
			return &consensus.MissingReceiptError{Box: boxName, Transaction: lookupNum}
		}

		if r.ReferenceNum != item.ReferenceNum {
			return &consensus.MismatchError{Number: item.TransactionNum, InStatement: true}
		}

		origin, err := r.NumberOfOrigin()
		if err != nil {
			return fmt.Errorf("verify: %s transaction %d: %w", boxName, lookupNum, err)
		}
		if origin != item.Origin {
			return &consensus.MismatchError{Number: item.TransactionNum, InStatement: true}
		}

		expectedAmount := r.Amount
		if item.Side == SideOutbox {
			expectedAmount = -expectedAmount
		}
		if expectedAmount != item.Amount {
			return &consensus.AmountMismatchError{
				Transaction: item.TransactionNum,
				Expected:    item.Amount,
				Got:         expectedAmount,
			}
		}

		if !kindPermitted(item.TxnKind, item.Side, r.Kind) {
			expected := make([]string, 0, len(expectedKinds(item.TxnKind, item.Side)))
			for _, k := range expectedKinds(item.TxnKind, item.Side) {
				expected = append(expected, k.String())
			}
			return &consensus.WrongReceiptKindError{
				Transaction: item.TransactionNum,
				Expected:    expected,
				Got:         r.Kind.String(),
			}
		}
	}

	if inboxCount != len(inbox.Live()) {
		return fmt.Errorf("verify: inbox has %d live receipts but statement accounts for %d",
			len(inbox.Live()), inboxCount)
	}
	if outboxCount != len(outbox.Live()) {
		return fmt.Errorf("verify: outbox has %d live receipts but statement accounts for %d",
			len(outbox.Live()), outboxCount)
	}

	// Step 5: adjust the excluded set for the target transaction, if
	// any.
	adjustedExcluded := excluded.Clone()
	if target != nil && !keepsOpeningAlive(target.Kind) {
		adjustedExcluded[target.TransactionNum] = struct{}{}
	}

	// Step 6: delegate to the transaction-statement comparison.
	return Transaction(ctx, stmt.Statement, adjustedExcluded, consensus.NewNumberSet())
}
