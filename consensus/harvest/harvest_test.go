package harvest

import (
	"reflect"
	"testing"

	"github.com/wigggles/otxconsensus/consensus"
	"github.com/wigggles/otxconsensus/receipt"
)

// TestHarvestScenarioB covers a failed withdrawal with a known reply:
// it recovers its opening number.
func TestHarvestScenarioB(t *testing.T) {
	req := Request{
		Kind:    receipt.KindWithdrawal,
		Opening: 11,
		Outcome: Outcome{Reply: ReplyFailure, Txn: TxnUnknown, Retrying: false},
	}

	got := Harvest(req)
	want := []Action{{Number: 11, Kind: ActionRecover}}
	if !reflect.DeepEqual(got.Actions, want) {
		t.Fatalf("Harvest(withdrawal failure) = %+v, want %+v", got.Actions, want)
	}
	if got.Ambiguous {
		t.Fatal("expected an unambiguous result")
	}
}

// TestHarvestScenarioE covers a paymentPlan activation that replies
// Success but whose txn fails: it burns the payer's opening and
// recovers both closing numbers and the payee's opening.
func TestHarvestScenarioE(t *testing.T) {
	outcome := Outcome{Reply: ReplySuccess, Txn: TxnFailure, Retrying: false}

	payer := Harvest(Request{
		Kind: receipt.KindPaymentPlan, Role: RolePayer,
		Opening: 100, Closings: []consensus.TransactionNumber{101},
		Outcome: outcome,
	})
	wantPayer := []Action{{Number: 100, Kind: ActionBurn}, {Number: 101, Kind: ActionRecover}}
	if !reflect.DeepEqual(payer.Actions, wantPayer) {
		t.Fatalf("payer harvest = %+v, want %+v", payer.Actions, wantPayer)
	}

	payee := Harvest(Request{
		Kind: receipt.KindPaymentPlan, Role: RolePayee,
		Opening: 200, Closings: []consensus.TransactionNumber{201},
		Outcome: outcome,
	})
	wantPayee := []Action{{Number: 200, Kind: ActionRecover}, {Number: 201, Kind: ActionRecover}}
	if !reflect.DeepEqual(payee.Actions, wantPayee) {
		t.Fatalf("payee harvest = %+v, want %+v", payee.Actions, wantPayee)
	}
}

func TestHarvestNeverRecoversOnSuccessSuccess(t *testing.T) {
	outcome := Outcome{Reply: ReplySuccess, Txn: TxnSuccess, Retrying: false}

	cases := []struct {
		kind     receipt.Kind
		role     PartyRole
		closings []consensus.TransactionNumber
	}{
		{receipt.KindProcessInbox, RolePayer, nil},
		{receipt.KindWithdrawal, RolePayer, nil},
		{receipt.KindDeposit, RolePayer, nil},
		{receipt.KindCancelCronItem, RolePayer, nil},
		{receipt.KindPayDividend, RolePayer, nil},
		{receipt.KindTransfer, RolePayer, nil},
		{receipt.KindMarketOffer, RolePayer, []consensus.TransactionNumber{11, 12}},
		{receipt.KindExchangeBasket, RolePayer, []consensus.TransactionNumber{11}},
		{receipt.KindPaymentPlan, RolePayer, []consensus.TransactionNumber{11}},
		{receipt.KindPaymentPlan, RolePayee, []consensus.TransactionNumber{12}},
		{receipt.KindSmartContract, RolePayer, []consensus.TransactionNumber{11}},
	}

	for _, c := range cases {
		req := Request{
			Kind: c.kind, Role: c.role, Opening: 7,
			Closings: c.closings, Outcome: outcome,
		}
		result := Harvest(req)
		for _, a := range result.Actions {
			if a.Kind == ActionRecover {
				t.Fatalf("kind=%v role=%v: success-success harvest recovered number %d",
					c.kind, c.role, a.Number)
			}
		}
	}
}

func TestHarvestIdempotent(t *testing.T) {
	req := Request{
		Kind: receipt.KindMarketOffer, Opening: 5,
		Closings: []consensus.TransactionNumber{6, 7},
		Outcome:  Outcome{Reply: ReplySuccess, Txn: TxnFailure, Retrying: false},
	}

	first := Harvest(req)
	second := Harvest(req)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Harvest is not idempotent: %+v != %+v", first, second)
	}
}

func TestHarvestRetryKeepsClosingsInPlace(t *testing.T) {
	req := Request{
		Kind: receipt.KindMarketOffer, Opening: 5,
		Closings: []consensus.TransactionNumber{6, 7},
		Outcome:  Outcome{Reply: ReplyFailure, Txn: TxnUnknown, Retrying: true},
	}

	result := Harvest(req)
	for _, a := range result.Actions {
		if a.Number == 6 || a.Number == 7 {
			t.Fatalf("retry must leave closing numbers untouched, got action %+v", a)
		}
	}
}

func TestHarvestUnknownTxnAfterSuccessReplyIsAmbiguous(t *testing.T) {
	req := Request{
		Kind: receipt.KindTransfer, Opening: 5,
		Outcome: Outcome{Reply: ReplySuccess, Txn: TxnUnknown, Retrying: false},
	}

	result := Harvest(req)
	if !result.Ambiguous {
		t.Fatal("expected an ambiguous result for an unknown txn outcome after a successful reply")
	}
}

func TestHarvestPaymentPlanUnknownTxnAfterSuccessReplyIsAmbiguous(t *testing.T) {
	outcome := Outcome{Reply: ReplySuccess, Txn: TxnUnknown, Retrying: false}

	payer := Harvest(Request{
		Kind: receipt.KindPaymentPlan, Role: RolePayer,
		Opening: 100, Closings: []consensus.TransactionNumber{101},
		Outcome: outcome,
	})
	if !payer.Ambiguous {
		t.Fatal("expected payer harvest to be ambiguous on an unknown txn outcome")
	}

	payee := Harvest(Request{
		Kind: receipt.KindPaymentPlan, Role: RolePayee,
		Opening: 200, Closings: []consensus.TransactionNumber{201},
		Outcome: outcome,
	})
	if !payee.Ambiguous {
		t.Fatal("expected payee harvest to be ambiguous on an unknown txn outcome")
	}
}
