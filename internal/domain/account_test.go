package domain

import (
	"errors"
	"sort"
	"testing"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     int64
		amount      int64
		expectError bool
	}{
		{name: "debit less than balance", balance: 100, amount: 50},
		{name: "debit exact balance", balance: 100, amount: 100},
		{name: "debit more than balance", balance: 100, amount: 150, expectError: true},
		{name: "debit from zero", balance: 0, amount: 1, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{OwnerID: "o1", Kind: KindGeneralCash, Balance: tt.balance}

			err := acc.ValidateDebit(tt.amount)

			if tt.expectError && !errors.Is(err, ErrInsufficientBalance) {
				t.Errorf("expected ErrInsufficientBalance, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestEffectSet_Keys_SortedAndUnique(t *testing.T) {
	set := EffectSet{
		{OwnerID: "staff-2", Kind: KindGeneralCash, Delta: 100},
		{OwnerID: "admin-1", Kind: KindCashLentOut, Delta: -100},
		{OwnerID: "staff-2", Kind: KindGeneralCash, Delta: 50},
		{OwnerID: "admin-1", Kind: KindGeneralCash, Delta: 100},
	}

	keys := set.Keys()

	if len(keys) != 3 {
		t.Fatalf("expected 3 unique keys, got %d", len(keys))
	}

	sorted := sort.SliceIsSorted(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	if !sorted {
		t.Errorf("keys not in canonical lock order: %v", keys)
	}
}

func TestEffectSet_Negate(t *testing.T) {
	set := EffectSet{
		{OwnerID: "a", Kind: KindGeneralCash, Delta: -500, Guarded: true},
		{OwnerID: "b", Kind: KindCashLentOut, Delta: 500},
	}

	neg := set.Negate()

	if neg[0].Delta != 500 || neg[1].Delta != -500 {
		t.Errorf("negation wrong: %+v", neg)
	}
	if neg[0].Guarded {
		t.Error("reversal effects must not be guarded")
	}

	// Applying a set then its negation nets to zero per account.
	totals := append(append(EffectSet{}, set...), neg...).Total()
	for k, v := range totals {
		if v != 0 {
			t.Errorf("account %v nets to %d, want 0", k, v)
		}
	}
}

func TestFormatReference(t *testing.T) {
	if got := FormatReference(42); got != "CRD-000042" {
		t.Errorf("expected CRD-000042, got %s", got)
	}
	if err := ValidateReference("CRD-000042"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateReference("XYZ-1"); err == nil {
		t.Error("expected error for bad reference")
	}
}
