package consensus

import "fmt"

// Sentinel and structured error values surfaced to the boundary.
// Callers should use errors.As/errors.Is against these types rather
// than string-matching.
var (
	// ErrMalformedStatement signals a structural parse failure of a
	// serialized Statement.
	ErrMalformedStatement = fmt.Errorf("malformed statement")

	// ErrMalformedReceipt signals a structural parse failure of a
	// serialized Receipt.
	ErrMalformedReceipt = fmt.Errorf("malformed receipt")

	// ErrUnsignedOrBadSignature is returned when a signature check
	// against a Statement, Receipt, or Context fails.
	ErrUnsignedOrBadSignature = fmt.Errorf("missing or invalid signature")

	// ErrNetworkTimeout passes through the network collaborator's
	// Timeout outcome.
	ErrNetworkTimeout = fmt.Errorf("network timeout")

	// ErrInvalidReply passes through the network collaborator's
	// InvalidReply outcome.
	ErrInvalidReply = fmt.Errorf("invalid reply")
)

// AlreadyIssuedError reports that issue/accept_issued was applied to a
// number already present in the issued set.
type AlreadyIssuedError struct {
	Number TransactionNumber
}

func (e *AlreadyIssuedError) Error() string {
	return fmt.Sprintf("transaction number %d is already issued", e.Number)
}

// NotIssuedError reports that close/recover was applied to a number
// that isn't in the issued set.
type NotIssuedError struct {
	Number TransactionNumber
}

func (e *NotIssuedError) Error() string {
	return fmt.Sprintf("transaction number %d is not issued", e.Number)
}

// NotAvailableError reports that consume was applied to a number not
// present in the available set.
type NotAvailableError struct {
	Number TransactionNumber
}

func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("transaction number %d is not available", e.Number)
}

// StaleNumberError reports that a tentative or issued candidate is at
// or below the highest watermark (a replay).
type StaleNumberError struct {
	Number  TransactionNumber
	Highest TransactionNumber
}

func (e *StaleNumberError) Error() string {
	return fmt.Sprintf("transaction number %d is at or below highest %d",
		e.Number, e.Highest)
}

// MismatchError reports a statement comparison disagreement between a
// live context and a signed statement.
type MismatchError struct {
	// Number is the offending transaction number.
	Number TransactionNumber
	// InStatement is true if Number was present in the statement but
	// not the (adjusted) context; false if present in the context but
	// missing from the statement.
	InStatement bool
}

func (e *MismatchError) Error() string {
	if e.InStatement {
		return fmt.Sprintf("statement claims unannounced number %d", e.Number)
	}
	return fmt.Sprintf("statement is missing expected number %d", e.Number)
}

// AlreadyPresentError reports that verify_transaction_statement's
// `included` delta named a number already present in the context.
type AlreadyPresentError struct {
	Number TransactionNumber
}

func (e *AlreadyPresentError) Error() string {
	return fmt.Sprintf("included number %d already present in context", e.Number)
}

// NotFoundError reports that verify_transaction_statement's `excluded`
// delta named a number absent from the context.
type NotFoundError struct {
	Number TransactionNumber
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("excluded number %d not present in context", e.Number)
}

// MissingReceiptError reports that a statement sub-item references a
// receipt not present in the relevant box.
type MissingReceiptError struct {
	Box         string
	Transaction TransactionNumber
}

func (e *MissingReceiptError) Error() string {
	return fmt.Sprintf("%s: no receipt for transaction %d", e.Box, e.Transaction)
}

// WrongReceiptKindError reports that a located receipt's kind isn't
// one of the kinds a sub-item permits.
type WrongReceiptKindError struct {
	Transaction TransactionNumber
	Expected    []string
	Got         string
}

func (e *WrongReceiptKindError) Error() string {
	return fmt.Sprintf("transaction %d: expected receipt kind in %v, got %q",
		e.Transaction, e.Expected, e.Got)
}

// AmountMismatchError reports that a located receipt's signed amount
// disagrees with the statement sub-item.
type AmountMismatchError struct {
	Transaction   TransactionNumber
	Expected, Got int64
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("transaction %d: expected amount %d, got %d",
		e.Transaction, e.Expected, e.Got)
}

// HashMismatchError reports that a box-receipt's full form does not
// hash to its abbreviated commitment.
type HashMismatchError struct {
	Transaction TransactionNumber
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("transaction %d: full receipt does not match abbreviated hash",
		e.Transaction)
}

// InvariantViolatedError reports a NumberRegistry audit failure. This
// should be impossible in correct operation; the owning Context must
// be destroyed and reloaded from its last signed receipt on receiving
// this error.
type InvariantViolatedError struct {
	Which string
}

func (e *InvariantViolatedError) Error() string {
	return fmt.Sprintf("invariant violated: %s", e.Which)
}

// ShadowedCronReceiptError reports a live inbox cron receipt (market or
// payment) carrying the same reference number as a finalReceipt already
// reported closed, which BalanceReceiptCheck treats as server
// misbehavior rather than a client-side reconciliation gap.
type ShadowedCronReceiptError struct {
	ReferenceNum uint64
}

func (e *ShadowedCronReceiptError) Error() string {
	return fmt.Sprintf("reference %d: cron receipt reappeared after a reported final receipt",
		e.ReferenceNum)
}
