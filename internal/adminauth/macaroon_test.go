package adminauth_test

import (
	"testing"

	"github.com/wigggles/otxconsensus/consensus"
	"github.com/wigggles/otxconsensus/internal/adminauth"
)

func TestMintAndVerifyAdminMacaroonRecordsSuccess(t *testing.T) {
	ctx := consensus.NewServerContext("alice", "notary-1", "notary-1", nil)
	if err := ctx.SetAdminPassword("correct horse battery staple"); err != nil {
		t.Fatalf("SetAdminPassword: %v", err)
	}

	m, err := adminauth.MintAdminMacaroon(ctx, "notary-1")
	if err != nil {
		t.Fatalf("MintAdminMacaroon: %v", err)
	}

	if err := adminauth.VerifyAdminMacaroon(ctx, "notary-1", m); err != nil {
		t.Fatalf("VerifyAdminMacaroon: %v", err)
	}

	attempted, err := ctx.AdminAttempted()
	if err != nil || !attempted {
		t.Fatalf("expected AdminAttempted to be true, got %v, err %v", attempted, err)
	}
	success, err := ctx.AdminSuccess()
	if err != nil || !success {
		t.Fatalf("expected AdminSuccess to be true, got %v, err %v", success, err)
	}
}

func TestVerifyAdminMacaroonRecordsFailureOnWrongNotary(t *testing.T) {
	ctx := consensus.NewServerContext("alice", "notary-1", "notary-1", nil)
	if err := ctx.SetAdminPassword("correct horse battery staple"); err != nil {
		t.Fatalf("SetAdminPassword: %v", err)
	}

	m, err := adminauth.MintAdminMacaroon(ctx, "notary-1")
	if err != nil {
		t.Fatalf("MintAdminMacaroon: %v", err)
	}

	if err := adminauth.VerifyAdminMacaroon(ctx, "notary-2", m); err == nil {
		t.Fatal("expected verification to fail against a macaroon scoped to a different notary")
	}

	attempted, err := ctx.AdminAttempted()
	if err != nil || !attempted {
		t.Fatalf("expected AdminAttempted to be true, got %v, err %v", attempted, err)
	}
	success, err := ctx.AdminSuccess()
	if err != nil || success {
		t.Fatalf("expected AdminSuccess to be false, got %v, err %v", success, err)
	}
}

func TestMintAdminMacaroonRejectsUnsetPassword(t *testing.T) {
	ctx := consensus.NewServerContext("alice", "notary-1", "notary-1", nil)

	if _, err := adminauth.MintAdminMacaroon(ctx, "notary-1"); err == nil {
		t.Fatal("expected an error when the context has no admin password set")
	}
}
