package receipt

import "testing"

func TestGetReceiptAmount(t *testing.T) {
	tests := []struct {
		kind   Kind
		amount int64
		want   int64
	}{
		{KindChequeReceipt, 500, -500},
		{KindVoucherReceipt, 250, -250},
		{KindMarketReceipt, 100, 100},
		{KindPaymentReceipt, 75, 75},
		{KindBasketReceipt, 10, 10},
		{KindTransferReceipt, 999, 0},
		{KindFinalReceipt, 999, 0},
		{KindNotice, 999, 0},
	}

	for _, tc := range tests {
		r := &Receipt{Kind: tc.kind, Amount: tc.amount}
		if got := GetReceiptAmount(r); got != tc.want {
			t.Errorf("%s: GetReceiptAmount() = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestNumberOfOriginCachesAndRequiresExplicitSet(t *testing.T) {
	r := &Receipt{Kind: KindPending, Origin: Origin{Number: 42}}
	got, err := r.NumberOfOrigin()
	if err != nil {
		t.Fatalf("NumberOfOrigin: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}

	accept := &Receipt{Kind: KindAcceptPending}
	if _, err := accept.NumberOfOrigin(); err != ErrNumberOfOriginRequired {
		t.Fatalf("expected ErrNumberOfOriginRequired, got %v", err)
	}
	accept.SetNumberOfOrigin(7)
	got, err = accept.NumberOfOrigin()
	if err != nil || got != 7 {
		t.Fatalf("expected (7, nil) after SetNumberOfOrigin, got (%d, %v)", got, err)
	}
}
