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

type handoverFixture struct {
	uc       *usecase.HandoverUseCase
	accounts *mocks.MockAccountRepository
}

var adminActor = &domain.Actor{ID: "admin-A", Role: domain.RoleAdmin, ShopID: "shop-1"}
var staffActor = &domain.Actor{ID: "staff-S", Role: domain.RoleStaff, ShopID: "shop-1"}

func newHandoverFixture(t *testing.T) *handoverFixture {
	t.Helper()

	accounts := mocks.NewMockAccountRepository()
	shops := mocks.NewMockShopRepository()
	shops.SetScope(domain.ShopScope{
		ShopID:   "shop-1",
		AdminID:  "admin-A",
		StaffIDs: []string{"staff-S", "staff-T"},
	})

	exec := usecase.NewExecutor(mocks.NewMockTransactionManager(), accounts, mocks.NewMockOutboxRepository(), nil, nil)
	uc := usecase.NewHandoverUseCase(exec, shops,
		mocks.NewMockDepositRepository(), mocks.NewMockRefillRepository(),
		mocks.NewMockIDGenerator(), nil)

	return &handoverFixture{uc: uc, accounts: accounts}
}

func TestHandoverUseCase_DepositLifecycle(t *testing.T) {
	f := newHandoverFixture(t)
	ctx := context.Background()

	f.accounts.Seed("staff-S", domain.KindGeneralCash, 1000)

	deposit, err := f.uc.CreateDeposit(ctx, usecase.CreateDepositInput{
		StaffID: "staff-S",
		ShopID:  "shop-1",
		Amount:  600,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverPending, deposit.Status)

	// Nothing moves until validation.
	assert.Equal(t, int64(1000), f.accounts.Balance("staff-S", domain.KindGeneralCash))

	validated, err := f.uc.ValidateDeposit(ctx, deposit.ID, adminActor)
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverValidated, validated.Status)
	assert.Equal(t, int64(400), f.accounts.Balance("staff-S", domain.KindGeneralCash))
	assert.Equal(t, int64(0), f.accounts.Balance("admin-A", domain.KindGeneralCash))
}

func TestHandoverUseCase_ValidateDepositRequiresAdmin(t *testing.T) {
	f := newHandoverFixture(t)
	ctx := context.Background()

	deposit, err := f.uc.CreateDeposit(ctx, usecase.CreateDepositInput{
		StaffID: "staff-S", ShopID: "shop-1", Amount: 100,
	})
	require.NoError(t, err)

	_, err = f.uc.ValidateDeposit(ctx, deposit.ID, staffActor)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)

	_, err = f.uc.ValidateDeposit(ctx, deposit.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestHandoverUseCase_ValidateDepositTwiceRejected(t *testing.T) {
	f := newHandoverFixture(t)
	ctx := context.Background()

	f.accounts.Seed("staff-S", domain.KindGeneralCash, 1000)

	deposit, err := f.uc.CreateDeposit(ctx, usecase.CreateDepositInput{
		StaffID: "staff-S", ShopID: "shop-1", Amount: 600,
	})
	require.NoError(t, err)

	_, err = f.uc.ValidateDeposit(ctx, deposit.ID, adminActor)
	require.NoError(t, err)

	_, err = f.uc.ValidateDeposit(ctx, deposit.ID, adminActor)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	// The failed revalidation must not debit again.
	assert.Equal(t, int64(400), f.accounts.Balance("staff-S", domain.KindGeneralCash))
}

func TestHandoverUseCase_RejectPendingDepositMovesNothing(t *testing.T) {
	f := newHandoverFixture(t)
	ctx := context.Background()

	f.accounts.Seed("staff-S", domain.KindGeneralCash, 1000)

	deposit, err := f.uc.CreateDeposit(ctx, usecase.CreateDepositInput{
		StaffID: "staff-S", ShopID: "shop-1", Amount: 600,
	})
	require.NoError(t, err)

	rejected, err := f.uc.RejectDeposit(ctx, deposit.ID, adminActor)
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverRejected, rejected.Status)
	assert.Equal(t, int64(1000), f.accounts.Balance("staff-S", domain.KindGeneralCash))
}

func TestHandoverUseCase_RejectValidatedDepositRestoresCash(t *testing.T) {
	f := newHandoverFixture(t)
	ctx := context.Background()

	f.accounts.Seed("staff-S", domain.KindGeneralCash, 1000)

	deposit, err := f.uc.CreateDeposit(ctx, usecase.CreateDepositInput{
		StaffID: "staff-S", ShopID: "shop-1", Amount: 600,
	})
	require.NoError(t, err)

	_, err = f.uc.ValidateDeposit(ctx, deposit.ID, adminActor)
	require.NoError(t, err)
	require.Equal(t, int64(400), f.accounts.Balance("staff-S", domain.KindGeneralCash))

	rejected, err := f.uc.RejectDeposit(ctx, deposit.ID, adminActor)
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverRejected, rejected.Status)
	assert.Equal(t, int64(1000), f.accounts.Balance("staff-S", domain.KindGeneralCash))

	_, err = f.uc.RejectDeposit(ctx, deposit.ID, adminActor)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, int64(1000), f.accounts.Balance("staff-S", domain.KindGeneralCash))
}

func TestHandoverUseCase_RefillLifecycle(t *testing.T) {
	f := newHandoverFixture(t)
	ctx := context.Background()

	refill, err := f.uc.RequestRefill(ctx, usecase.RequestRefillInput{
		AdminID: "admin-A",
		ShopID:  "shop-1",
		Amount:  900,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverPending, refill.Status)

	validated, err := f.uc.ValidateRefill(ctx, refill.ID, adminActor)
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverValidated, validated.Status)

	// Every staff member is credited; the admin's cash is untouched.
	assert.Equal(t, int64(900), f.accounts.Balance("staff-S", domain.KindGeneralCash))
	assert.Equal(t, int64(900), f.accounts.Balance("staff-T", domain.KindGeneralCash))
	assert.Equal(t, int64(0), f.accounts.Balance("admin-A", domain.KindGeneralCash))
}

func TestHandoverUseCase_RejectValidatedRefillRejected(t *testing.T) {
	f := newHandoverFixture(t)
	ctx := context.Background()

	refill, err := f.uc.RequestRefill(ctx, usecase.RequestRefillInput{
		AdminID: "admin-A", ShopID: "shop-1", Amount: 900,
	})
	require.NoError(t, err)

	_, err = f.uc.ValidateRefill(ctx, refill.ID, adminActor)
	require.NoError(t, err)

	_, err = f.uc.RejectRefill(ctx, refill.ID, adminActor)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	assert.Equal(t, int64(900), f.accounts.Balance("staff-S", domain.KindGeneralCash))
}

func TestHandoverUseCase_RejectPendingRefill(t *testing.T) {
	f := newHandoverFixture(t)
	ctx := context.Background()

	refill, err := f.uc.RequestRefill(ctx, usecase.RequestRefillInput{
		AdminID: "admin-A", ShopID: "shop-1", Amount: 900,
	})
	require.NoError(t, err)

	rejected, err := f.uc.RejectRefill(ctx, refill.ID, adminActor)
	require.NoError(t, err)
	assert.Equal(t, domain.HandoverRejected, rejected.Status)
	assert.Zero(t, f.accounts.Balance("staff-S", domain.KindGeneralCash))
}
