package usecase

import (
	"context"
	"time"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/infrastructure/metrics"
	"github.com/sidibe/caisse/internal/ledger"
)

// HandoverUseCase handles deposits (versements) and cash refills
// (rechargements): staff↔admin cash handovers with a pending/validated/
// rejected lifecycle.
type HandoverUseCase struct {
	executor    *Executor
	shopRepo    ShopRepository
	depositRepo DepositRepository
	refillRepo  RefillRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewHandoverUseCase creates a new HandoverUseCase.
func NewHandoverUseCase(
	executor *Executor,
	shopRepo ShopRepository,
	depositRepo DepositRepository,
	refillRepo RefillRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *HandoverUseCase {
	return &HandoverUseCase{
		executor:    executor,
		shopRepo:    shopRepo,
		depositRepo: depositRepo,
		refillRepo:  refillRepo,
		idGen:       idGen,
		metrics:     m,
	}
}

// CreateDepositInput represents input for creating a deposit.
type CreateDepositInput struct {
	StaffID string
	ShopID  string
	Amount  int64
}

// CreateDeposit records a pending versement. No balance moves until an
// admin validates it.
func (uc *HandoverUseCase) CreateDeposit(ctx context.Context, input CreateDepositInput) (*domain.Deposit, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	scope, err := uc.resolveScope(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if !scope.HasMember(input.StaffID) {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	deposit := &domain.Deposit{
		ID:        uc.idGen.Generate(),
		StaffID:   input.StaffID,
		ShopID:    input.ShopID,
		Amount:    input.Amount,
		Status:    domain.HandoverPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		return &Plan{
			Mutate: func(ctx context.Context, tx Transaction) error {
				return uc.depositRepo.Create(ctx, tx, deposit)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return deposit, nil
}

// ValidateDeposit moves a pending deposit to VALIDATED and debits the
// staff member's general cash. Only validating roles may call this.
func (uc *HandoverUseCase) ValidateDeposit(ctx context.Context, depositID string, actor *domain.Actor) (*domain.Deposit, error) {
	if actor == nil || !actor.Role.CanValidateHandover() {
		return nil, domain.ErrInsufficientRole
	}

	var deposit *domain.Deposit

	err := uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		var err error
		deposit, err = uc.depositRepo.GetByIDForUpdate(ctx, tx, depositID)
		if err != nil {
			return nil, err
		}

		if err := deposit.MarkValidated(); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		deposit.UpdatedAt = now

		return &Plan{
			Effects: ledger.ValidateDeposit(deposit),
			Event:   domain.LedgerUpdated(uc.idGen.Generate(), domain.AggregateTypeDeposit, deposit.ID, deposit.ShopID, now),
			Mutate: func(ctx context.Context, tx Transaction) error {
				return uc.depositRepo.UpdateStatus(ctx, tx, deposit.ID, domain.HandoverValidated, now)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsValidated.Inc()
	}

	return deposit, nil
}

// RejectDeposit rejects a deposit. Rejecting one that was already
// validated restores the staff member's general cash; rejecting a
// pending one moves no balance. Rejecting twice is refused.
func (uc *HandoverUseCase) RejectDeposit(ctx context.Context, depositID string, actor *domain.Actor) (*domain.Deposit, error) {
	if actor == nil || !actor.Role.CanValidateHandover() {
		return nil, domain.ErrInsufficientRole
	}

	var deposit *domain.Deposit

	err := uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		var err error
		deposit, err = uc.depositRepo.GetByIDForUpdate(ctx, tx, depositID)
		if err != nil {
			return nil, err
		}

		wasValidated := deposit.Status == domain.HandoverValidated

		if err := deposit.MarkRejected(); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		deposit.UpdatedAt = now

		plan := &Plan{
			Mutate: func(ctx context.Context, tx Transaction) error {
				return uc.depositRepo.UpdateStatus(ctx, tx, deposit.ID, domain.HandoverRejected, now)
			},
		}

		if wasValidated {
			plan.Effects = ledger.RejectValidatedDeposit(deposit)
			plan.Event = domain.LedgerUpdated(uc.idGen.Generate(), domain.AggregateTypeDeposit, deposit.ID, deposit.ShopID, now)
		}

		return plan, nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsRejected.Inc()
	}

	return deposit, nil
}

// RequestRefillInput represents input for requesting a cash refill.
type RequestRefillInput struct {
	AdminID string
	ShopID  string
	Amount  int64
}

// RequestRefill records a pending rechargement.
func (uc *HandoverUseCase) RequestRefill(ctx context.Context, input RequestRefillInput) (*domain.CashRefill, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	scope, err := uc.resolveScope(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if !scope.HasMember(input.AdminID) {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	refill := &domain.CashRefill{
		ID:        uc.idGen.Generate(),
		AdminID:   input.AdminID,
		ShopID:    input.ShopID,
		Amount:    input.Amount,
		Status:    domain.HandoverPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		return &Plan{
			Mutate: func(ctx context.Context, tx Transaction) error {
				return uc.refillRepo.Create(ctx, tx, refill)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return refill, nil
}

// ValidateRefill credits the general cash of every staff member of the
// shop, not only the requester.
func (uc *HandoverUseCase) ValidateRefill(ctx context.Context, refillID string, actor *domain.Actor) (*domain.CashRefill, error) {
	if actor == nil || !actor.Role.CanValidateHandover() {
		return nil, domain.ErrInsufficientRole
	}

	var refill *domain.CashRefill

	err := uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		var err error
		refill, err = uc.refillRepo.GetByIDForUpdate(ctx, tx, refillID)
		if err != nil {
			return nil, err
		}

		if err := refill.MarkValidated(); err != nil {
			return nil, err
		}

		scope, err := uc.resolveScope(ctx, refill.ShopID)
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		refill.UpdatedAt = now

		return &Plan{
			Effects: ledger.ValidateRefill(scope, refill),
			Event:   domain.LedgerUpdated(uc.idGen.Generate(), domain.AggregateTypeRefill, refill.ID, refill.ShopID, now),
			Mutate: func(ctx context.Context, tx Transaction) error {
				return uc.refillRepo.UpdateStatus(ctx, tx, refill.ID, domain.HandoverValidated, now)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RefillsValidated.Inc()
	}

	return refill, nil
}

// RejectRefill rejects a pending rechargement; no balance moves.
func (uc *HandoverUseCase) RejectRefill(ctx context.Context, refillID string, actor *domain.Actor) (*domain.CashRefill, error) {
	if actor == nil || !actor.Role.CanValidateHandover() {
		return nil, domain.ErrInsufficientRole
	}

	var refill *domain.CashRefill

	err := uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		var err error
		refill, err = uc.refillRepo.GetByIDForUpdate(ctx, tx, refillID)
		if err != nil {
			return nil, err
		}

		if err := refill.MarkRejected(); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		refill.UpdatedAt = now

		return &Plan{
			Mutate: func(ctx context.Context, tx Transaction) error {
				return uc.refillRepo.UpdateStatus(ctx, tx, refill.ID, domain.HandoverRejected, now)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return refill, nil
}

// ListDeposits lists deposits for a shop.
func (uc *HandoverUseCase) ListDeposits(ctx context.Context, shopID string, limit, offset int) ([]*domain.Deposit, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.depositRepo.ListByShop(ctx, shopID, limit, offset)
}

// ListRefills lists cash refills for a shop.
func (uc *HandoverUseCase) ListRefills(ctx context.Context, shopID string, limit, offset int) ([]*domain.CashRefill, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.refillRepo.ListByShop(ctx, shopID, limit, offset)
}

func (uc *HandoverUseCase) resolveScope(ctx context.Context, shopID string) (domain.ShopScope, error) {
	scope, err := uc.shopRepo.GetScope(ctx, shopID)
	if err != nil {
		return domain.ShopScope{}, err
	}
	if err := scope.Validate(); err != nil {
		return domain.ShopScope{}, err
	}
	return scope, nil
}
