package usecase

import (
	"context"
	"time"

	"github.com/sidibe/caisse/internal/domain"
)

// AccountRepository is the account registry: balance cells keyed by
// (owner, kind), created lazily and locked for update.
type AccountRepository interface {
	// ResolveForUpdate returns the accounts for the given keys locked
	// within tx, creating missing ones with balance 0. Callers pass keys
	// already sorted in canonical order; the rows come back locked in
	// that same order.
	ResolveForUpdate(ctx context.Context, tx Transaction, keys []domain.AccountKey) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance int64, updatedAt time.Time) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error)
	ListByOwners(ctx context.Context, ownerIDs []string) ([]*domain.Account, error)
}

// CreditRepository defines data access for credits.
type CreditRepository interface {
	Create(ctx context.Context, tx Transaction, credit *domain.Credit) error
	GetByReference(ctx context.Context, reference string) (*domain.Credit, error)
	GetByReferenceForUpdate(ctx context.Context, tx Transaction, reference string) (*domain.Credit, error)
	Update(ctx context.Context, tx Transaction, credit *domain.Credit) error
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.Credit, error)
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.PaymentStatus, updatedAt time.Time) error
	ListByCredit(ctx context.Context, reference string) ([]*domain.Payment, error)
}

// ExpenseRepository defines data access for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, tx Transaction, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Expense, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.ExpenseStatus, updatedAt time.Time) error
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.Expense, error)
}

// StockMovementRepository defines data access for stock movements.
type StockMovementRepository interface {
	Create(ctx context.Context, tx Transaction, movement *domain.StockMovement) error
	GetByID(ctx context.Context, id string) (*domain.StockMovement, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.StockMovement, error)
	Update(ctx context.Context, tx Transaction, movement *domain.StockMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*domain.StockMovement, error)
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Product, error)
	AdjustStock(ctx context.Context, tx Transaction, id string, delta int64, updatedAt time.Time) error
}

// DepositRepository defines data access for deposits (versements).
type DepositRepository interface {
	Create(ctx context.Context, tx Transaction, deposit *domain.Deposit) error
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Deposit, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.HandoverStatus, updatedAt time.Time) error
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.Deposit, error)
}

// RefillRepository defines data access for cash refills (rechargements).
type RefillRepository interface {
	Create(ctx context.Context, tx Transaction, refill *domain.CashRefill) error
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.CashRefill, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.HandoverStatus, updatedAt time.Time) error
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.CashRefill, error)
}

// ShopRepository resolves the shop scope every ledger operation needs.
type ShopRepository interface {
	GetScope(ctx context.Context, shopID string) (domain.ShopScope, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// ReferenceSequence yields the monotonically increasing credit reference
// sequence. Uniqueness is enforced by the underlying store.
type ReferenceSequence interface {
	Next(ctx context.Context, tx Transaction) (int64, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-executes an operation on retryable storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
