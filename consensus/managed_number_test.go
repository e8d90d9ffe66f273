package consensus

import "testing"

func newTestContextWithAvailable(nums ...TransactionNumber) *Context {
	ctx := NewClientContext("notary-1", "alice", "notary-1")
	for _, n := range nums {
		ctx.Issue(n)
	}
	return ctx
}

func TestManagedNumberRecoversOnFailure(t *testing.T) {
	ctx := newTestContextWithAvailable(1, 2, 3)

	mn, err := AcquireManagedNumber(ctx, "withdrawal")
	if err != nil {
		t.Fatalf("AcquireManagedNumber: %v", err)
	}
	if !ctx.Issued().Contains(mn.Number()) {
		t.Fatal("expected the reserved number to remain issued")
	}
	if ctx.Available().Contains(mn.Number()) {
		t.Fatal("expected the reserved number to be consumed out of available")
	}

	if err := mn.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !ctx.Available().Contains(mn.Number()) {
		t.Fatal("expected Close to recover the number on failure")
	}
}

func TestManagedNumberKeepsNumberOnSuccess(t *testing.T) {
	ctx := newTestContextWithAvailable(1)

	mn, err := AcquireManagedNumber(ctx, "withdrawal")
	if err != nil {
		t.Fatalf("AcquireManagedNumber: %v", err)
	}
	mn.SetSuccess(true)

	if err := mn.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if ctx.Available().Contains(mn.Number()) {
		t.Fatal("expected a successful transaction's number to stay spent")
	}
}

func TestManagedNumberCloseIsIdempotent(t *testing.T) {
	ctx := newTestContextWithAvailable(1)

	mn, err := AcquireManagedNumber(ctx, "withdrawal")
	if err != nil {
		t.Fatalf("AcquireManagedNumber: %v", err)
	}
	if err := mn.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := mn.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got: %v", err)
	}
}

func TestZeroManagedNumber(t *testing.T) {
	mn := ZeroManagedNumber()
	if mn.Valid() {
		t.Fatal("expected the zero sentinel to be invalid")
	}
	mn.SetSuccess(true)
	if err := mn.Close(); err != nil {
		t.Fatalf("expected Close on the zero sentinel to be a no-op, got %v", err)
	}
}

func TestAcquireManagedNumberInsufficientYieldsInvalidHandle(t *testing.T) {
	ctx := NewClientContext("notary-1", "alice", "notary-1")

	mn, err := AcquireManagedNumber(ctx, "withdrawal")
	if err != nil {
		t.Fatalf("expected an invalid sentinel, not an error, got: %v", err)
	}
	if mn.Valid() {
		t.Fatal("expected an invalid sentinel when the available pool is empty")
	}
	if mn.Purpose != "withdrawal" {
		t.Fatalf("expected the purpose tag to survive onto the sentinel, got %q", mn.Purpose)
	}
	if err := mn.Close(); err != nil {
		t.Fatalf("Close on the sentinel should be a no-op, got: %v", err)
	}
}

func TestAcquireManagedNumberProcessInboxNeverReserves(t *testing.T) {
	ctx := newTestContextWithAvailable(1, 2)

	mn, err := AcquireManagedNumber(ctx, PurposeProcessInbox)
	if err != nil {
		t.Fatalf("AcquireManagedNumber: %v", err)
	}
	if mn.Valid() {
		t.Fatal("expected processInbox to proceed with a zero reserve")
	}
	if !ctx.Available().Contains(1) || !ctx.Available().Contains(2) {
		t.Fatal("expected processInbox to leave the available pool untouched")
	}
}
