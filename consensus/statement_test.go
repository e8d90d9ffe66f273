package consensus

import "testing"

func TestStatementRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		notary    string
		party     string
		issued    NumberSet
		available NumberSet
	}{
		{
			name:      "empty sets",
			notary:    "notary-1",
			party:     "alice",
			issued:    NewNumberSet(),
			available: NewNumberSet(),
		},
		{
			name:      "available a strict subset of issued",
			notary:    "notary-1",
			party:     "alice",
			issued:    NewNumberSet(5, 6, 7),
			available: NewNumberSet(6, 7),
		},
		{
			name:      "large numbers round-trip through uint64",
			notary:    "notary-2",
			party:     "bob",
			issued:    NewNumberSet(1, 1<<40, 1<<63),
			available: NewNumberSet(1 << 63),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := BuildStatement(tc.notary, tc.party, tc.issued, tc.available)

			parsed, err := ParseStatement(s.Serialize())
			if err != nil {
				t.Fatalf("ParseStatement: %v", err)
			}

			if parsed.Notary() != s.Notary() {
				t.Fatalf("notary mismatch: %q != %q", parsed.Notary(), s.Notary())
			}
			if parsed.Party() != s.Party() {
				t.Fatalf("party mismatch: %q != %q", parsed.Party(), s.Party())
			}
			if !parsed.Issued().Equal(s.Issued()) {
				t.Fatalf("issued mismatch: %v != %v", parsed.Issued(), s.Issued())
			}
			if !parsed.Available().Equal(s.Available()) {
				t.Fatalf("available mismatch: %v != %v", parsed.Available(), s.Available())
			}
		})
	}
}

func TestStatementParseMalformed(t *testing.T) {
	if _, err := ParseStatement([]byte{0x00, 0x01}); err == nil {
		t.Fatal("expected ErrMalformedStatement on truncated input")
	}

	valid := BuildStatement("n", "p", NewNumberSet(1), NewNumberSet(1)).Serialize()
	withTrailer := append(append([]byte{}, valid...), 0xFF)
	if _, err := ParseStatement(withTrailer); err == nil {
		t.Fatal("expected ErrMalformedStatement on trailing bytes")
	}
}

func TestStatementRemove(t *testing.T) {
	s := BuildStatement("n", "p", NewNumberSet(1, 2, 3), NewNumberSet(1, 2, 3))
	s.Remove(2)

	if s.Issued().Contains(2) || s.Available().Contains(2) {
		t.Fatal("Remove should strip the number from both sets")
	}
	if !s.Issued().Contains(1) || !s.Issued().Contains(3) {
		t.Fatal("Remove should not touch unrelated numbers")
	}
}
