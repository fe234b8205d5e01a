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

type stockFixture struct {
	uc        *usecase.StockUseCase
	accounts  *mocks.MockAccountRepository
	products  *mocks.MockProductRepository
	movements *mocks.MockStockMovementRepository
	shops     *mocks.MockShopRepository
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()

	accounts := mocks.NewMockAccountRepository()
	products := mocks.NewMockProductRepository()
	movements := mocks.NewMockStockMovementRepository()
	shops := mocks.NewMockShopRepository()
	shops.SetScope(domain.ShopScope{
		ShopID:   "shop-1",
		AdminID:  "admin-A",
		StaffIDs: []string{"staff-S", "staff-T"},
	})

	products.Put(&domain.Product{
		ID:            "prod-1",
		ShopID:        "shop-1",
		Name:          "sac de riz",
		PurchasePrice: 50,
		SalePrice:     65,
		Stock:         20,
	})

	exec := usecase.NewExecutor(mocks.NewMockTransactionManager(), accounts, mocks.NewMockOutboxRepository(), nil, nil)
	uc := usecase.NewStockUseCase(exec, shops, movements, products, mocks.NewMockIDGenerator(), nil)

	return &stockFixture{uc: uc, accounts: accounts, products: products, movements: movements, shops: shops}
}

func TestStockUseCase_InboundMovementRaisesValuationForAllMembers(t *testing.T) {
	f := newStockFixture(t)

	movement, err := f.uc.RecordMovement(context.Background(), usecase.RecordMovementInput{
		ProductID: "prod-1",
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		Quantity:  10,
		Direction: domain.StockIn,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), movement.UnitPrice)

	assert.Equal(t, int64(30), f.products.Stock("prod-1"))
	for _, owner := range []string{"admin-A", "staff-S", "staff-T"} {
		assert.Equal(t, int64(500), f.accounts.Balance(owner, domain.KindNetStockValue), owner)
	}
}

func TestStockUseCase_OutboundMovementLowersValuation(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.uc.RecordMovement(context.Background(), usecase.RecordMovementInput{
		ProductID: "prod-1",
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		Quantity:  5,
		Direction: domain.StockOut,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(15), f.products.Stock("prod-1"))
	for _, owner := range []string{"admin-A", "staff-S", "staff-T"} {
		assert.Equal(t, int64(-250), f.accounts.Balance(owner, domain.KindNetStockValue), owner)
	}
}

func TestStockUseCase_OutboundBeyondStockRejected(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.uc.RecordMovement(context.Background(), usecase.RecordMovementInput{
		ProductID: "prod-1",
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		Quantity:  25,
		Direction: domain.StockOut,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(20), f.products.Stock("prod-1"))
	assert.Zero(t, f.accounts.Balance("admin-A", domain.KindNetStockValue))
}

func TestStockUseCase_CancelReversesStockAndValuation(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	movement, err := f.uc.RecordMovement(ctx, usecase.RecordMovementInput{
		ProductID: "prod-1",
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		Quantity:  10,
		Direction: domain.StockIn,
	})
	require.NoError(t, err)

	cancelled, err := f.uc.CancelMovement(ctx, movement.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MovementCancelled, cancelled.Status)

	assert.Equal(t, int64(20), f.products.Stock("prod-1"))
	for _, owner := range []string{"admin-A", "staff-S", "staff-T"} {
		assert.Zero(t, f.accounts.Balance(owner, domain.KindNetStockValue), owner)
	}
}

func TestStockUseCase_CancelInboundAfterDepletionRejected(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	inbound, err := f.uc.RecordMovement(ctx, usecase.RecordMovementInput{
		ProductID: "prod-1",
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		Quantity:  10,
		Direction: domain.StockIn,
	})
	require.NoError(t, err)

	// Sell through almost everything, leaving less on hand than the
	// inbound movement brought in.
	_, err = f.uc.RecordMovement(ctx, usecase.RecordMovementInput{
		ProductID: "prod-1",
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		Quantity:  25,
		Direction: domain.StockOut,
	})
	require.NoError(t, err)

	_, err = f.uc.CancelMovement(ctx, inbound.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), f.products.Stock("prod-1"))
}

func TestStockUseCase_UpdateMovementUsesRecordedPrice(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	movement, err := f.uc.RecordMovement(ctx, usecase.RecordMovementInput{
		ProductID: "prod-1",
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		Quantity:  10,
		Direction: domain.StockIn,
	})
	require.NoError(t, err)

	// A later purchase-price change must not affect the correction.
	f.products.Put(&domain.Product{
		ID:            "prod-1",
		ShopID:        "shop-1",
		Name:          "sac de riz",
		PurchasePrice: 80,
		SalePrice:     95,
		Stock:         f.products.Stock("prod-1"),
	})

	updated, err := f.uc.UpdateMovement(ctx, movement.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.Quantity)

	assert.Equal(t, int64(24), f.products.Stock("prod-1"))
	for _, owner := range []string{"admin-A", "staff-S", "staff-T"} {
		assert.Equal(t, int64(200), f.accounts.Balance(owner, domain.KindNetStockValue), owner)
	}
}

func TestStockUseCase_CancelUsesRecordedShop(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	f.shops.SetScope(domain.ShopScope{
		ShopID:  "shop-2",
		AdminID: "admin-B",
	})

	movement, err := f.uc.RecordMovement(ctx, usecase.RecordMovementInput{
		ProductID: "prod-1",
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		Quantity:  10,
		Direction: domain.StockIn,
	})
	require.NoError(t, err)

	// The reversal must fan out over shop-1's members only; shop-2's
	// admin holds no stake in the product.
	_, err = f.uc.CancelMovement(ctx, movement.ID)
	require.NoError(t, err)

	for _, owner := range []string{"admin-A", "staff-S", "staff-T"} {
		assert.Zero(t, f.accounts.Balance(owner, domain.KindNetStockValue), owner)
	}
	assert.Zero(t, f.accounts.Balance("admin-B", domain.KindNetStockValue))
}

func TestStockUseCase_UpdateCancelledMovementRejected(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	movement, err := f.uc.RecordMovement(ctx, usecase.RecordMovementInput{
		ProductID: "prod-1",
		ActorID:   "staff-S",
		ShopID:    "shop-1",
		Quantity:  10,
		Direction: domain.StockIn,
	})
	require.NoError(t, err)

	_, err = f.uc.CancelMovement(ctx, movement.ID)
	require.NoError(t, err)

	_, err = f.uc.UpdateMovement(ctx, movement.ID, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestStockUseCase_InvalidInputs(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	_, err := f.uc.RecordMovement(ctx, usecase.RecordMovementInput{
		ProductID: "prod-1", ActorID: "staff-S", ShopID: "shop-1",
		Quantity: 0, Direction: domain.StockIn,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.RecordMovement(ctx, usecase.RecordMovementInput{
		ProductID: "prod-1", ActorID: "staff-S", ShopID: "shop-1",
		Quantity: 5, Direction: domain.StockDirection("LATERAL"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)

	_, err = f.uc.RecordMovement(ctx, usecase.RecordMovementInput{
		ProductID: "missing", ActorID: "staff-S", ShopID: "shop-1",
		Quantity: 5, Direction: domain.StockIn,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.uc.RecordMovement(ctx, usecase.RecordMovementInput{
		ProductID: "prod-1", ActorID: "stranger", ShopID: "shop-1",
		Quantity: 5, Direction: domain.StockIn,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
