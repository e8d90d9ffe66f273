package consensus

import "testing"

func TestIssueAndConsume(t *testing.T) {
	r := NewNumberRegistry()

	if err := r.Issue(5); err != nil {
		t.Fatalf("Issue(5): %v", err)
	}
	if err := r.Issue(5); err == nil {
		t.Fatal("expected AlreadyIssuedError on double issue")
	}

	if err := r.Consume(5); err != nil {
		t.Fatalf("Consume(5): %v", err)
	}
	if err := r.Consume(5); err == nil {
		t.Fatal("expected NotAvailableError on double consume")
	}

	if !r.Issued().Contains(5) {
		t.Fatal("5 should still be issued after consume")
	}
	if r.Available().Contains(5) {
		t.Fatal("5 should not be available after consume")
	}
}

func TestRecoverAndClose(t *testing.T) {
	r := NewNumberRegistry()
	_ = r.Issue(11)
	_ = r.Consume(11)

	if err := r.Recover(11); err != nil {
		t.Fatalf("Recover(11): %v", err)
	}
	if !r.Available().Contains(11) {
		t.Fatal("11 should be available after recover")
	}

	// Idempotent: recovering an already-available number succeeds.
	if err := r.Recover(11); err != nil {
		t.Fatalf("idempotent Recover(11): %v", err)
	}

	if err := r.Close(11); err != nil {
		t.Fatalf("Close(11): %v", err)
	}
	if r.Issued().Contains(11) || r.Available().Contains(11) {
		t.Fatal("11 should be gone from both sets after close")
	}
	if err := r.Close(11); err == nil {
		t.Fatal("expected NotIssuedError on double close")
	}
	if err := r.Recover(99); err == nil {
		t.Fatal("expected NotIssuedError recovering a number never issued")
	}
}

func TestAcceptIssued(t *testing.T) {
	r := NewNumberRegistry()
	_ = r.Issue(1)

	added := r.AcceptIssued(NewNumberSet(1, 2, 3))
	if added != 2 {
		t.Fatalf("expected 2 freshly added, got %d", added)
	}
	for _, n := range []TransactionNumber{1, 2, 3} {
		if !r.Issued().Contains(n) || !r.Available().Contains(n) {
			t.Fatalf("number %d should be issued and available", n)
		}
	}
}

func TestUpdateHighestReplayDefense(t *testing.T) {
	r := NewNumberRegistry()

	good, bad, smallestBad := r.UpdateHighest(NewNumberSet(45, 55, 60))
	_ = good
	if r.Highest() != 60 {
		t.Fatalf("expected highest 60, got %d", r.Highest())
	}
	if !bad.Contains(45) || len(bad) != 1 {
		t.Fatalf("expected bad={45}, got %v", bad)
	}
	if smallestBad != 45 {
		t.Fatalf("expected smallestBad=45, got %d", smallestBad)
	}

	// Scenario F: a later delivery of {45} alone is entirely rejected
	// and leaves highest unchanged.
	good, bad, smallestBad = r.UpdateHighest(NewNumberSet(45))
	if len(good) != 0 {
		t.Fatalf("expected no good numbers, got %v", good)
	}
	if !bad.Contains(45) {
		t.Fatalf("expected bad={45}, got %v", bad)
	}
	if smallestBad != 45 {
		t.Fatalf("expected smallestBad=45, got %d", smallestBad)
	}
	if r.Highest() != 60 {
		t.Fatalf("highest must stay monotonic at 60, got %d", r.Highest())
	}

	// Replay defense on add_tentative: any n <= highest is refused.
	r.AddTentative(30)
	if r.Tentative().Contains(30) {
		t.Fatal("AddTentative should silently refuse numbers <= highest")
	}
	r.AddTentative(61)
	if !r.Tentative().Contains(61) {
		t.Fatal("AddTentative should accept numbers above highest")
	}
}

func TestAuditInvariants(t *testing.T) {
	r := NewNumberRegistry()
	_ = r.Issue(1)
	_ = r.Issue(2)
	_ = r.Consume(1)

	if err := r.Audit(); err != nil {
		t.Fatalf("expected clean audit, got %v", err)
	}

	// Break invariant 1 directly to confirm the auditor catches it.
	r.available[99] = struct{}{}
	if err := r.Audit(); err == nil {
		t.Fatal("expected InvariantViolatedError for available without issued")
	}
}

func TestHasOpenTransactions(t *testing.T) {
	r := NewNumberRegistry()
	_ = r.Issue(1)
	_ = r.Issue(2)
	if r.HasOpenTransactions() {
		t.Fatal("no transaction has been consumed yet")
	}
	_ = r.Consume(1)
	if !r.HasOpenTransactions() {
		t.Fatal("expected an open transaction after consume")
	}
}
