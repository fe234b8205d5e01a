package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/usecase"
	"github.com/sidibe/caisse/internal/usecase/mocks"
)

type creditFixture struct {
	uc       *usecase.CreditUseCase
	accounts *mocks.MockAccountRepository
	credits  *mocks.MockCreditRepository
	payments *mocks.MockPaymentRepository
	outbox   *mocks.MockOutboxRepository
}

func newCreditFixture(t *testing.T) *creditFixture {
	t.Helper()

	accounts := mocks.NewMockAccountRepository()
	outbox := mocks.NewMockOutboxRepository()
	credits := mocks.NewMockCreditRepository()
	payments := mocks.NewMockPaymentRepository()
	shops := mocks.NewMockShopRepository()
	shops.SetScope(domain.ShopScope{
		ShopID:   "shop-1",
		AdminID:  "admin-A",
		StaffIDs: []string{"staff-S", "staff-T"},
	})

	exec := usecase.NewExecutor(mocks.NewMockTransactionManager(), accounts, outbox, nil, nil)
	uc := usecase.NewCreditUseCase(exec, shops, credits, payments,
		mocks.NewMockReferenceSequence(), mocks.NewMockIDGenerator(), nil)

	return &creditFixture{uc: uc, accounts: accounts, credits: credits, payments: payments, outbox: outbox}
}

func TestCreditUseCase_IssueOutboundCash(t *testing.T) {
	f := newCreditFixture(t)
	ctx := context.Background()

	credit, err := f.uc.IssueCredit(ctx, usecase.IssueCreditInput{
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		ClientID:  "client-1",
		Direction: domain.CreditOut,
		Kind:      domain.CreditCash,
		Amount:    500,
	})
	require.NoError(t, err)

	assert.Equal(t, "CRD-000001", credit.Reference)
	assert.Equal(t, domain.CreditUnpaid, credit.Status)
	assert.Equal(t, int64(500), credit.AmountRemaining)

	assert.Equal(t, int64(-500), f.accounts.Balance("staff-S", domain.KindGeneralCash))
	assert.Equal(t, int64(500), f.accounts.Balance("staff-S", domain.KindCashLentOut))
	assert.Equal(t, int64(-500), f.accounts.Balance("admin-A", domain.KindGeneralCash))
	assert.Equal(t, int64(500), f.accounts.Balance("admin-A", domain.KindCashLentOut))

	stored, err := f.credits.GetByReference(ctx, credit.Reference)
	require.NoError(t, err)
	assert.Equal(t, credit.ID, stored.ID)
	assert.Len(t, f.outbox.Events, 1)
}

func TestCreditUseCase_IssueOutboundSaleMovesNoCash(t *testing.T) {
	f := newCreditFixture(t)

	_, err := f.uc.IssueCredit(context.Background(), usecase.IssueCreditInput{
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		ClientID:  "client-1",
		Direction: domain.CreditOut,
		Kind:      domain.CreditSale,
		Amount:    300,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), f.accounts.Balance("staff-S", domain.KindGeneralCash))
	assert.Equal(t, int64(0), f.accounts.Balance("admin-A", domain.KindGeneralCash))
	assert.Equal(t, int64(300), f.accounts.Balance("staff-S", domain.KindSaleCredit))
	assert.Equal(t, int64(300), f.accounts.Balance("admin-A", domain.KindSaleCredit))
}

func TestCreditUseCase_IssueInbound(t *testing.T) {
	f := newCreditFixture(t)

	_, err := f.uc.IssueCredit(context.Background(), usecase.IssueCreditInput{
		ActorID:   "admin-A",
		ShopID:    "shop-1",
		ClientID:  "client-2",
		Direction: domain.CreditIn,
		Kind:      domain.CreditCash,
		Amount:    800,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(800), f.accounts.Balance("admin-A", domain.KindGeneralCash))
	assert.Equal(t, int64(800), f.accounts.Balance("admin-A", domain.KindCashReceivedIn))
}

func TestCreditUseCase_IssueRejectsNonMember(t *testing.T) {
	f := newCreditFixture(t)

	_, err := f.uc.IssueCredit(context.Background(), usecase.IssueCreditInput{
		ActorID:   "stranger",
		ShopID:    "shop-1",
		ClientID:  "client-1",
		Direction: domain.CreditOut,
		Kind:      domain.CreditCash,
		Amount:    100,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreditUseCase_IssueRejectsInvalidAmount(t *testing.T) {
	f := newCreditFixture(t)

	for _, amount := range []int64{0, -5} {
		_, err := f.uc.IssueCredit(context.Background(), usecase.IssueCreditInput{
			ActorID:   "staff-S",
			ShopID:    "shop-1",
			ClientID:  "client-1",
			Direction: domain.CreditOut,
			Kind:      domain.CreditCash,
			Amount:    amount,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
}

func TestCreditUseCase_PayCreditFansOut(t *testing.T) {
	f := newCreditFixture(t)
	ctx := context.Background()

	credit, err := f.uc.IssueCredit(ctx, usecase.IssueCreditInput{
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		ClientID:  "client-1",
		Direction: domain.CreditOut,
		Kind:      domain.CreditCash,
		Amount:    500,
	})
	require.NoError(t, err)

	payment, err := f.uc.PayCredit(ctx, usecase.PayCreditInput{
		Reference: credit.Reference,
		ActorID:   "staff-S",
		Amount:    200,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentApplied, payment.Status)

	// Issue left staff-S at -500/+500; the partial repayment lands on
	// every member's cash while the lent-out exposure unwinds shop-wide.
	assert.Equal(t, int64(-300), f.accounts.Balance("staff-S", domain.KindGeneralCash))
	assert.Equal(t, int64(300), f.accounts.Balance("staff-S", domain.KindCashLentOut))
	assert.Equal(t, int64(200), f.accounts.Balance("staff-T", domain.KindGeneralCash))
	assert.Equal(t, int64(-200), f.accounts.Balance("staff-T", domain.KindCashLentOut))
	assert.Equal(t, int64(-300), f.accounts.Balance("admin-A", domain.KindGeneralCash))
	assert.Equal(t, int64(300), f.accounts.Balance("admin-A", domain.KindCashLentOut))

	stored, _, err := f.uc.GetCredit(ctx, credit.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.CreditInProgress, stored.Status)
	assert.Equal(t, int64(200), stored.AmountPaid)
	assert.Equal(t, int64(300), stored.AmountRemaining)
}

func TestCreditUseCase_FullPaymentSettles(t *testing.T) {
	f := newCreditFixture(t)
	ctx := context.Background()

	credit, err := f.uc.IssueCredit(ctx, usecase.IssueCreditInput{
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		ClientID:  "client-1",
		Direction: domain.CreditOut,
		Kind:      domain.CreditCash,
		Amount:    500,
	})
	require.NoError(t, err)

	_, err = f.uc.PayCredit(ctx, usecase.PayCreditInput{Reference: credit.Reference, ActorID: "staff-S", Amount: 500})
	require.NoError(t, err)

	stored, _, err := f.uc.GetCredit(ctx, credit.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.CreditPaid, stored.Status)
	assert.Equal(t, int64(0), stored.AmountRemaining)
}

func TestCreditUseCase_PayRejectsNonMember(t *testing.T) {
	f := newCreditFixture(t)
	ctx := context.Background()

	credit, err := f.uc.IssueCredit(ctx, usecase.IssueCreditInput{
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		ClientID:  "client-1",
		Direction: domain.CreditOut,
		Kind:      domain.CreditCash,
		Amount:    500,
	})
	require.NoError(t, err)

	_, err = f.uc.PayCredit(ctx, usecase.PayCreditInput{
		Reference: credit.Reference,
		ActorID:   "stranger",
		Amount:    200,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.Equal(t, int64(-500), f.accounts.Balance("staff-S", domain.KindGeneralCash))
	assert.Equal(t, int64(500), f.accounts.Balance("staff-S", domain.KindCashLentOut))
}

func TestCreditUseCase_OverpaymentRejected(t *testing.T) {
	f := newCreditFixture(t)
	ctx := context.Background()

	credit, err := f.uc.IssueCredit(ctx, usecase.IssueCreditInput{
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		ClientID:  "client-1",
		Direction: domain.CreditOut,
		Kind:      domain.CreditCash,
		Amount:    500,
	})
	require.NoError(t, err)

	_, err = f.uc.PayCredit(ctx, usecase.PayCreditInput{Reference: credit.Reference, ActorID: "staff-S", Amount: 600})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	// Nothing moved beyond the issuance.
	assert.Equal(t, int64(-500), f.accounts.Balance("staff-S", domain.KindGeneralCash))
	assert.Equal(t, int64(0), f.accounts.Balance("staff-T", domain.KindGeneralCash))
}

func TestCreditUseCase_CancelCreditNetsToZero(t *testing.T) {
	for _, tc := range []struct {
		name      string
		direction domain.CreditDirection
		kind      domain.CreditKind
	}{
		{"outbound cash", domain.CreditOut, domain.CreditCash},
		{"outbound sale", domain.CreditOut, domain.CreditSale},
		{"inbound cash", domain.CreditIn, domain.CreditCash},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newCreditFixture(t)
			ctx := context.Background()

			credit, err := f.uc.IssueCredit(ctx, usecase.IssueCreditInput{
				ActorID:   "staff-S",
				ShopID:    "shop-1",
				ClientID:  "client-1",
				Direction: tc.direction,
				Kind:      tc.kind,
				Amount:    750,
			})
			require.NoError(t, err)

			cancelled, err := f.uc.CancelCredit(ctx, credit.Reference)
			require.NoError(t, err)
			assert.Equal(t, domain.CreditCancelled, cancelled.Status)

			for _, owner := range []string{"admin-A", "staff-S", "staff-T"} {
				for _, kind := range []domain.AccountKind{
					domain.KindGeneralCash, domain.KindCashLentOut,
					domain.KindSaleCredit, domain.KindCashReceivedIn,
				} {
					assert.Zero(t, f.accounts.Balance(owner, kind), "%s/%s", owner, kind)
				}
			}
		})
	}
}

func TestCreditUseCase_CancelCancelledCreditRejected(t *testing.T) {
	f := newCreditFixture(t)
	ctx := context.Background()

	credit, err := f.uc.IssueCredit(ctx, usecase.IssueCreditInput{
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		ClientID:  "client-1",
		Direction: domain.CreditOut,
		Kind:      domain.CreditCash,
		Amount:    100,
	})
	require.NoError(t, err)

	_, err = f.uc.CancelCredit(ctx, credit.Reference)
	require.NoError(t, err)

	_, err = f.uc.CancelCredit(ctx, credit.Reference)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	// The failed second cancel must not move balances again.
	assert.Equal(t, int64(0), f.accounts.Balance("staff-S", domain.KindGeneralCash))
}

func TestCreditUseCase_CancelPaymentRestoresCredit(t *testing.T) {
	f := newCreditFixture(t)
	ctx := context.Background()

	credit, err := f.uc.IssueCredit(ctx, usecase.IssueCreditInput{
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		ClientID:  "client-1",
		Direction: domain.CreditOut,
		Kind:      domain.CreditCash,
		Amount:    500,
	})
	require.NoError(t, err)

	payment, err := f.uc.PayCredit(ctx, usecase.PayCreditInput{Reference: credit.Reference, ActorID: "staff-S", Amount: 500})
	require.NoError(t, err)

	cancelled, err := f.uc.CancelPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCancelled, cancelled.Status)

	stored, _, err := f.uc.GetCredit(ctx, credit.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.CreditUnpaid, stored.Status)
	assert.Equal(t, int64(500), stored.AmountRemaining)

	// Balances return to the post-issuance shape.
	assert.Equal(t, int64(-500), f.accounts.Balance("staff-S", domain.KindGeneralCash))
	assert.Equal(t, int64(500), f.accounts.Balance("staff-S", domain.KindCashLentOut))
	assert.Equal(t, int64(0), f.accounts.Balance("staff-T", domain.KindGeneralCash))
	assert.Equal(t, int64(0), f.accounts.Balance("staff-T", domain.KindCashLentOut))
}

func TestCreditUseCase_CancelPaymentTwiceRejected(t *testing.T) {
	f := newCreditFixture(t)
	ctx := context.Background()

	credit, err := f.uc.IssueCredit(ctx, usecase.IssueCreditInput{
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		ClientID:  "client-1",
		Direction: domain.CreditOut,
		Kind:      domain.CreditCash,
		Amount:    500,
	})
	require.NoError(t, err)

	payment, err := f.uc.PayCredit(ctx, usecase.PayCreditInput{Reference: credit.Reference, ActorID: "staff-S", Amount: 100})
	require.NoError(t, err)

	_, err = f.uc.CancelPayment(ctx, payment.ID)
	require.NoError(t, err)

	_, err = f.uc.CancelPayment(ctx, payment.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestCreditUseCase_UnknownReference(t *testing.T) {
	f := newCreditFixture(t)

	_, err := f.uc.PayCredit(context.Background(), usecase.PayCreditInput{Reference: "CRD-999999", ActorID: "staff-S", Amount: 100})
	assert.ErrorIs(t, err, domain.ErrCreditNotFound)

	_, err = f.uc.CancelCredit(context.Background(), "CRD-999999")
	assert.ErrorIs(t, err, domain.ErrCreditNotFound)
}

func TestCreditUseCase_ReferencesAreSequential(t *testing.T) {
	f := newCreditFixture(t)
	ctx := context.Background()

	for i, want := range []string{"CRD-000001", "CRD-000002", "CRD-000003"} {
		credit, err := f.uc.IssueCredit(ctx, usecase.IssueCreditInput{
			ActorID:   "staff-S",
			ShopID:    "shop-1",
			ClientID:  "client-1",
			Direction: domain.CreditOut,
			Kind:      domain.CreditSale,
			Amount:    int64(100 * (i + 1)),
		})
		require.NoError(t, err)
		assert.Equal(t, want, credit.Reference)
	}
}
