package usecase

import (
	"context"
	"time"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/infrastructure/metrics"
	"github.com/sidibe/caisse/internal/ledger"
)

// ExpenseUseCase handles expense creation and cancellation.
type ExpenseUseCase struct {
	executor    *Executor
	shopRepo    ShopRepository
	expenseRepo ExpenseRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	executor *Executor,
	shopRepo ShopRepository,
	expenseRepo ExpenseRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		executor:    executor,
		shopRepo:    shopRepo,
		expenseRepo: expenseRepo,
		idGen:       idGen,
		metrics:     m,
	}
}

// CreateExpenseInput represents input for creating an expense.
type CreateExpenseInput struct {
	ActorID string
	ShopID  string
	Label   string
	Amount  int64
}

// CreateExpense debits the actor's and the shop admin's general cash.
// The debits are guarded: if either balance would go negative the whole
// operation aborts before any write.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	scope, err := uc.shopRepo.GetScope(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if !scope.HasMember(input.ActorID) {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:        uc.idGen.Generate(),
		ActorID:   input.ActorID,
		ShopID:    input.ShopID,
		Label:     input.Label,
		Amount:    input.Amount,
		Status:    domain.ExpenseValid,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		return &Plan{
			Effects: ledger.CreateExpense(scope, input.ActorID, input.Amount),
			Event:   domain.LedgerUpdated(uc.idGen.Generate(), domain.AggregateTypeExpense, expense.ID, expense.ShopID, now),
			Mutate: func(ctx context.Context, tx Transaction) error {
				return uc.expenseRepo.Create(ctx, tx, expense)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesCreated.Inc()
	}

	return expense, nil
}

// scopeForExpense resolves the shop scope from the expense's recorded
// shop, so reversals always land on the accounts that were debited.
func (uc *ExpenseUseCase) scopeForExpense(ctx context.Context, expenseID string) (domain.ShopScope, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return domain.ShopScope{}, err
	}

	scope, err := uc.shopRepo.GetScope(ctx, expense.ShopID)
	if err != nil {
		return domain.ShopScope{}, err
	}
	if err := scope.Validate(); err != nil {
		return domain.ShopScope{}, err
	}

	return scope, nil
}

// CancelExpense credits the debited accounts back and marks the expense
// cancelled. Cancelling twice is rejected with no balance change.
func (uc *ExpenseUseCase) CancelExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	scope, err := uc.scopeForExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	var expense *domain.Expense

	err = uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		var err error
		expense, err = uc.expenseRepo.GetByIDForUpdate(ctx, tx, expenseID)
		if err != nil {
			return nil, err
		}

		effects := ledger.CancelExpense(scope, expense)

		if err := expense.Cancel(); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		expense.UpdatedAt = now

		return &Plan{
			Effects: effects,
			Event:   domain.LedgerUpdated(uc.idGen.Generate(), domain.AggregateTypeExpense, expense.ID, expense.ShopID, now),
			Mutate: func(ctx context.Context, tx Transaction) error {
				return uc.expenseRepo.UpdateStatus(ctx, tx, expense.ID, domain.ExpenseCancelled, now)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesCancelled.Inc()
	}

	return expense, nil
}

// ListExpenses lists expenses for a shop.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, shopID string, limit, offset int) ([]*domain.Expense, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.expenseRepo.ListByShop(ctx, shopID, limit, offset)
}
