package usecase

import (
	"context"
	"time"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/infrastructure/metrics"
	"github.com/sidibe/caisse/internal/ledger"
)

// StockUseCase records stock movements and propagates their valuation
// across the shop's members.
type StockUseCase struct {
	executor     *Executor
	shopRepo     ShopRepository
	movementRepo StockMovementRepository
	productRepo  ProductRepository
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewStockUseCase creates a new StockUseCase.
func NewStockUseCase(
	executor *Executor,
	shopRepo ShopRepository,
	movementRepo StockMovementRepository,
	productRepo ProductRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *StockUseCase {
	return &StockUseCase{
		executor:     executor,
		shopRepo:     shopRepo,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		idGen:        idGen,
		metrics:      m,
	}
}

// RecordMovementInput represents input for recording a stock movement.
type RecordMovementInput struct {
	ProductID string
	ActorID   string
	ShopID    string
	Quantity  int64
	Direction domain.StockDirection
}

// RecordMovement applies a stock quantity change on the product and
// fans the valuation delta (quantity × current purchase price) out to
// every shop member's net-stock-value account. Outgoing movements that
// exceed the available stock are rejected.
func (uc *StockUseCase) RecordMovement(ctx context.Context, input RecordMovementInput) (*domain.StockMovement, error) {
	if err := domain.ValidateQuantity(input.Quantity); err != nil {
		return nil, err
	}
	if !input.Direction.IsValid() {
		return nil, domain.ErrInvalidDirection
	}

	scope, err := uc.resolveScope(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if !scope.HasMember(input.ActorID) {
		return nil, domain.ErrUnauthorized
	}

	var movement *domain.StockMovement

	err = uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		product, err := uc.productRepo.GetByIDForUpdate(ctx, tx, input.ProductID)
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		movement = &domain.StockMovement{
			ID:        uc.idGen.Generate(),
			ProductID: input.ProductID,
			ActorID:   input.ActorID,
			ShopID:    input.ShopID,
			Quantity:  input.Quantity,
			Direction: input.Direction,
			Status:    domain.MovementValid,
			UnitPrice: product.PurchasePrice,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := movement.Validate(); err != nil {
			return nil, err
		}

		signed := movement.SignedQuantity()
		if product.Stock+signed < 0 {
			return nil, domain.ErrInsufficientStock
		}

		return &Plan{
			Effects: ledger.StockValuation(scope, signed, movement.UnitPrice),
			Event:   domain.LedgerUpdated(uc.idGen.Generate(), domain.AggregateTypeMovement, movement.ID, movement.ShopID, now),
			Mutate: func(ctx context.Context, tx Transaction) error {
				if err := uc.movementRepo.Create(ctx, tx, movement); err != nil {
					return err
				}
				return uc.productRepo.AdjustStock(ctx, tx, product.ID, signed, now)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsRecorded.Inc()
	}

	return movement, nil
}

// CancelMovement reverses both the physical stock change and the
// valuation fan-out, at the unit price recorded on the movement.
func (uc *StockUseCase) CancelMovement(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	scope, err := uc.scopeForMovement(ctx, movementID)
	if err != nil {
		return nil, err
	}

	var movement *domain.StockMovement

	err = uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		var err error
		movement, err = uc.movementRepo.GetByIDForUpdate(ctx, tx, movementID)
		if err != nil {
			return nil, err
		}

		effects := ledger.CancelStockMovement(scope, movement)

		if err := movement.Cancel(); err != nil {
			return nil, err
		}

		product, err := uc.productRepo.GetByIDForUpdate(ctx, tx, movement.ProductID)
		if err != nil {
			return nil, err
		}

		reversal := -movement.SignedQuantity()
		if product.Stock+reversal < 0 {
			return nil, domain.ErrInsufficientStock
		}

		now := time.Now().UTC()
		movement.UpdatedAt = now

		return &Plan{
			Effects: effects,
			Event:   domain.LedgerUpdated(uc.idGen.Generate(), domain.AggregateTypeMovement, movement.ID, movement.ShopID, now),
			Mutate: func(ctx context.Context, tx Transaction) error {
				if err := uc.movementRepo.Update(ctx, tx, movement); err != nil {
					return err
				}
				return uc.productRepo.AdjustStock(ctx, tx, product.ID, reversal, now)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsCancelled.Inc()
	}

	return movement, nil
}

// UpdateMovement changes the quantity of a recorded movement. The prior
// valuation is reversed from the previously recorded quantity before the
// new one is applied, both at the unit price recorded on the movement.
func (uc *StockUseCase) UpdateMovement(ctx context.Context, movementID string, newQuantity int64) (*domain.StockMovement, error) {
	if err := domain.ValidateQuantity(newQuantity); err != nil {
		return nil, err
	}

	scope, err := uc.scopeForMovement(ctx, movementID)
	if err != nil {
		return nil, err
	}

	var movement *domain.StockMovement

	err = uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		var err error
		movement, err = uc.movementRepo.GetByIDForUpdate(ctx, tx, movementID)
		if err != nil {
			return nil, err
		}

		if movement.Status != domain.MovementValid {
			return nil, domain.ErrInvalidStateTransition
		}

		oldSigned := movement.SignedQuantity()

		reverse := ledger.StockValuation(scope, oldSigned, movement.UnitPrice).Negate()

		movement.Quantity = newQuantity
		newSigned := movement.SignedQuantity()

		apply := ledger.StockValuation(scope, newSigned, movement.UnitPrice)
		effects := append(reverse, apply...)

		product, err := uc.productRepo.GetByIDForUpdate(ctx, tx, movement.ProductID)
		if err != nil {
			return nil, err
		}

		stockDelta := newSigned - oldSigned
		if product.Stock+stockDelta < 0 {
			return nil, domain.ErrInsufficientStock
		}

		now := time.Now().UTC()
		movement.UpdatedAt = now

		return &Plan{
			Effects: effects,
			Event:   domain.LedgerUpdated(uc.idGen.Generate(), domain.AggregateTypeMovement, movement.ID, movement.ShopID, now),
			Mutate: func(ctx context.Context, tx Transaction) error {
				if err := uc.movementRepo.Update(ctx, tx, movement); err != nil {
					return err
				}
				return uc.productRepo.AdjustStock(ctx, tx, product.ID, stockDelta, now)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}

// ListMovements lists movements for a product.
func (uc *StockUseCase) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*domain.StockMovement, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.movementRepo.ListByProduct(ctx, productID, limit, offset)
}

// scopeForMovement resolves the shop scope from the movement's recorded
// shop, so reversals always land on the accounts that were touched.
func (uc *StockUseCase) scopeForMovement(ctx context.Context, movementID string) (domain.ShopScope, error) {
	movement, err := uc.movementRepo.GetByID(ctx, movementID)
	if err != nil {
		return domain.ShopScope{}, err
	}
	return uc.resolveScope(ctx, movement.ShopID)
}

func (uc *StockUseCase) resolveScope(ctx context.Context, shopID string) (domain.ShopScope, error) {
	scope, err := uc.shopRepo.GetScope(ctx, shopID)
	if err != nil {
		return domain.ShopScope{}, err
	}
	if err := scope.Validate(); err != nil {
		return domain.ShopScope{}, err
	}
	return scope, nil
}
