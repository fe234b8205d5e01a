package ledger_test

import (
	"testing"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/ledger"
)

var testScope = domain.ShopScope{
	ShopID:   "shop-1",
	AdminID:  "admin-A",
	StaffIDs: []string{"staff-S", "staff-T"},
}

func balanceOf(set domain.EffectSet, owner string, kind domain.AccountKind) int64 {
	return set.Total()[domain.AccountKey{OwnerID: owner, Kind: kind}]
}

func TestIssueCredit_SortieCash(t *testing.T) {
	credit := &domain.Credit{
		OwnerID:   "staff-S",
		Direction: domain.CreditOut,
		Kind:      domain.CreditCash,
		Amount:    500,
	}

	set := ledger.IssueCredit(testScope, credit)

	checks := []struct {
		owner string
		kind  domain.AccountKind
		want  int64
	}{
		{"staff-S", domain.KindGeneralCash, -500},
		{"admin-A", domain.KindGeneralCash, -500},
		{"staff-S", domain.KindCashLentOut, 500},
		{"admin-A", domain.KindCashLentOut, 500},
	}
	for _, c := range checks {
		if got := balanceOf(set, c.owner, c.kind); got != c.want {
			t.Errorf("%s/%s: got %d, want %d", c.owner, c.kind, got, c.want)
		}
	}

	if len(set) != 4 {
		t.Errorf("expected 4 effects, got %d", len(set))
	}
}

func TestIssueCredit_SortieSale_NoCashMovement(t *testing.T) {
	credit := &domain.Credit{
		OwnerID:   "staff-S",
		Direction: domain.CreditOut,
		Kind:      domain.CreditSale,
		Amount:    300,
	}

	set := ledger.IssueCredit(testScope, credit)

	if got := balanceOf(set, "staff-S", domain.KindSaleCredit); got != 300 {
		t.Errorf("staff sale-credit: got %d, want 300", got)
	}
	if got := balanceOf(set, "admin-A", domain.KindSaleCredit); got != 300 {
		t.Errorf("admin sale-credit: got %d, want 300", got)
	}
	if got := balanceOf(set, "staff-S", domain.KindGeneralCash); got != 0 {
		t.Errorf("sale on credit must not move cash, got %d", got)
	}
}

func TestIssueCredit_Entre_MirrorsWithOppositeSigns(t *testing.T) {
	credit := &domain.Credit{
		OwnerID:   "staff-S",
		Direction: domain.CreditIn,
		Kind:      domain.CreditCash,
		Amount:    500,
	}

	set := ledger.IssueCredit(testScope, credit)

	if got := balanceOf(set, "staff-S", domain.KindGeneralCash); got != 500 {
		t.Errorf("staff general cash: got %d, want 500", got)
	}
	if got := balanceOf(set, "admin-A", domain.KindCashReceivedIn); got != 500 {
		t.Errorf("admin cash-received-in: got %d, want 500", got)
	}
	if got := balanceOf(set, "staff-S", domain.KindCashLentOut); got != 0 {
		t.Errorf("ENTRE credit must not touch cash-lent-out, got %d", got)
	}
}

func TestCancelCredit_RestoresIssuanceExactly(t *testing.T) {
	for _, tc := range []struct {
		direction domain.CreditDirection
		kind      domain.CreditKind
	}{
		{domain.CreditOut, domain.CreditCash},
		{domain.CreditOut, domain.CreditSale},
		{domain.CreditIn, domain.CreditCash},
	} {
		credit := &domain.Credit{
			OwnerID:   "staff-S",
			Direction: tc.direction,
			Kind:      tc.kind,
			Amount:    750,
		}

		issue := ledger.IssueCredit(testScope, credit)
		cancel := ledger.CancelCredit(testScope, credit)

		totals := append(append(domain.EffectSet{}, issue...), cancel...).Total()
		for key, v := range totals {
			if v != 0 {
				t.Errorf("%s/%s: issue+cancel nets to %d for %v, want 0",
					tc.direction, tc.kind, v, key)
			}
		}
	}
}

func TestPayCredit_SortieCash(t *testing.T) {
	credit := &domain.Credit{
		OwnerID:   "staff-S",
		Direction: domain.CreditOut,
		Kind:      domain.CreditCash,
		Amount:    500,
	}

	set := ledger.PayCredit(testScope, credit, 500)

	if got := balanceOf(set, "admin-A", domain.KindCashLentOut); got != -500 {
		t.Errorf("admin cash-lent-out: got %d, want -500", got)
	}
	if got := balanceOf(set, "admin-A", domain.KindGeneralCash); got != 500 {
		t.Errorf("admin general cash: got %d, want 500", got)
	}
	for _, staff := range testScope.StaffIDs {
		if got := balanceOf(set, staff, domain.KindGeneralCash); got != 500 {
			t.Errorf("%s general cash: got %d, want 500", staff, got)
		}
		if got := balanceOf(set, staff, domain.KindCashLentOut); got != -500 {
			t.Errorf("%s cash-lent-out: got %d, want -500", staff, got)
		}
	}
}

func TestPayCredit_SortieSale_UsesSaleCreditAccount(t *testing.T) {
	credit := &domain.Credit{
		OwnerID:   "staff-S",
		Direction: domain.CreditOut,
		Kind:      domain.CreditSale,
		Amount:    200,
	}

	set := ledger.PayCredit(testScope, credit, 200)

	if got := balanceOf(set, "admin-A", domain.KindSaleCredit); got != -200 {
		t.Errorf("admin sale-credit: got %d, want -200", got)
	}
	if got := balanceOf(set, "admin-A", domain.KindCashLentOut); got != 0 {
		t.Errorf("cash-lent-out must stay untouched, got %d", got)
	}
}

func TestPayCredit_Entre(t *testing.T) {
	credit := &domain.Credit{
		OwnerID:   "staff-S",
		Direction: domain.CreditIn,
		Kind:      domain.CreditCash,
		Amount:    400,
	}

	set := ledger.PayCredit(testScope, credit, 400)

	if got := balanceOf(set, "admin-A", domain.KindCashReceivedIn); got != -400 {
		t.Errorf("admin cash-received-in: got %d, want -400", got)
	}
	if got := balanceOf(set, "admin-A", domain.KindGeneralCash); got != -400 {
		t.Errorf("admin general cash: got %d, want -400", got)
	}
	for _, staff := range testScope.StaffIDs {
		if got := balanceOf(set, staff, domain.KindGeneralCash); got != -400 {
			t.Errorf("%s general cash: got %d, want -400", staff, got)
		}
	}
}

func TestCancelPayment_NegatesPaymentExactly(t *testing.T) {
	credit := &domain.Credit{
		OwnerID:   "staff-S",
		Direction: domain.CreditOut,
		Kind:      domain.CreditCash,
		Amount:    500,
	}
	payment := &domain.Payment{Amount: 250, Status: domain.PaymentApplied}

	pay := ledger.PayCredit(testScope, credit, payment.Amount)
	cancel := ledger.CancelPayment(testScope, credit, payment)

	totals := append(append(domain.EffectSet{}, pay...), cancel...).Total()
	for key, v := range totals {
		if v != 0 {
			t.Errorf("pay+cancel nets to %d for %v, want 0", v, key)
		}
	}
}

func TestCreateExpense(t *testing.T) {
	set := ledger.CreateExpense(testScope, "staff-S", 120)

	if got := balanceOf(set, "staff-S", domain.KindGeneralCash); got != -120 {
		t.Errorf("actor general cash: got %d, want -120", got)
	}
	if got := balanceOf(set, "admin-A", domain.KindGeneralCash); got != -120 {
		t.Errorf("admin general cash: got %d, want -120", got)
	}
	for _, e := range set {
		if !e.Guarded {
			t.Errorf("expense debits must be guarded: %+v", e)
		}
	}
}

func TestCreateExpense_AdminActorDebitedOnce(t *testing.T) {
	set := ledger.CreateExpense(testScope, "admin-A", 120)

	if len(set) != 1 {
		t.Fatalf("expected a single debit for an admin actor, got %d effects", len(set))
	}
	if got := balanceOf(set, "admin-A", domain.KindGeneralCash); got != -120 {
		t.Errorf("admin general cash: got %d, want -120", got)
	}
}

func TestStockValuation_FansOutToAllMembers(t *testing.T) {
	set := ledger.StockValuation(testScope, 10, 25)

	members := testScope.Members()
	if len(set) != len(members) {
		t.Fatalf("expected %d effects, got %d", len(members), len(set))
	}
	for _, m := range members {
		if got := balanceOf(set, m, domain.KindNetStockValue); got != 250 {
			t.Errorf("%s net stock value: got %d, want 250", m, got)
		}
	}
}

func TestStockValuation_InThenOutReturnsToOrigin(t *testing.T) {
	in := ledger.StockValuation(testScope, 7, 30)
	out := ledger.StockValuation(testScope, -7, 30)

	totals := append(append(domain.EffectSet{}, in...), out...).Total()
	for key, v := range totals {
		if v != 0 {
			t.Errorf("in+out nets to %d for %v, want 0", v, key)
		}
	}
}

func TestDepositRules(t *testing.T) {
	deposit := &domain.Deposit{StaffID: "staff-S", Amount: 200}

	validate := ledger.ValidateDeposit(deposit)
	if got := balanceOf(validate, "staff-S", domain.KindGeneralCash); got != -200 {
		t.Errorf("staff general cash: got %d, want -200", got)
	}
	if got := balanceOf(validate, "admin-A", domain.KindGeneralCash); got != 0 {
		t.Errorf("admin cash must stay untouched on deposit validation, got %d", got)
	}

	reject := ledger.RejectValidatedDeposit(deposit)
	if got := balanceOf(reject, "staff-S", domain.KindGeneralCash); got != 200 {
		t.Errorf("rejection must restore staff cash, got %d", got)
	}
}

func TestValidateRefill_AllStaffNotOnlyRequester(t *testing.T) {
	refill := &domain.CashRefill{AdminID: "admin-A", Amount: 1000}

	set := ledger.ValidateRefill(testScope, refill)

	if len(set) != len(testScope.StaffIDs) {
		t.Fatalf("expected %d effects, got %d", len(testScope.StaffIDs), len(set))
	}
	for _, staff := range testScope.StaffIDs {
		if got := balanceOf(set, staff, domain.KindGeneralCash); got != 1000 {
			t.Errorf("%s general cash: got %d, want 1000", staff, got)
		}
	}
	if got := balanceOf(set, "admin-A", domain.KindGeneralCash); got != 0 {
		t.Errorf("admin cash must stay untouched on refill, got %d", got)
	}
}
