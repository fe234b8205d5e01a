package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/infrastructure/metrics"
)

// Plan is the output of the prepare phase of a business operation: the
// compiled effect set, the domain-record mutation to run alongside it,
// and the notification event to enqueue on commit.
type Plan struct {
	Effects domain.EffectSet
	Event   *domain.OutboxEvent
	Mutate  func(ctx context.Context, tx Transaction) error
}

// PlanFunc builds a Plan inside an open transaction. It may lock and
// read domain records (credit, payment, movement) to validate lifecycle
// state and compile effects from recorded amounts. It must be safe to
// re-run: the executor re-invokes it when a retryable conflict occurs.
type PlanFunc func(ctx context.Context, tx Transaction) (*Plan, error)

// Executor applies a plan atomically: every account the effect set
// touches is resolved through the registry and locked in canonical
// order, deltas are applied, the domain mutation runs, the outbox event
// is written, and the whole unit commits or rolls back as one.
type Executor struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewExecutor creates a new Executor. retrier may be nil, in which case
// conflicts surface to the caller after a single attempt. m may be nil.
func NewExecutor(
	txManager TransactionManager,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	retrier Retrier,
	m *metrics.Metrics,
) *Executor {
	return &Executor{
		txManager:   txManager,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		retrier:     retrier,
		metrics:     m,
	}
}

// Apply runs the plan in one atomic unit of work. No partial balance
// change is ever persisted: any failure from the plan, a guarded debit,
// the mutation or the commit rolls back everything.
func (e *Executor) Apply(ctx context.Context, plan PlanFunc) error {
	if e.retrier == nil {
		return e.applyOnce(ctx, plan)
	}

	return e.retrier.Retry(ctx, func() error {
		return e.applyOnce(ctx, plan)
	})
}

func (e *Executor) applyOnce(ctx context.Context, plan PlanFunc) (err error) {
	start := time.Now()
	defer func() {
		if e.metrics == nil {
			return
		}
		if err != nil {
			e.metrics.LedgerRollbacks.WithLabelValues(rollbackReason(err)).Inc()
			return
		}
		e.metrics.LedgerCommits.Inc()
		e.metrics.ApplyDuration.Observe(time.Since(start).Seconds())
	}()

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := e.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	p, err := plan(txCtx, tx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	if len(p.Effects) > 0 {
		if err := e.applyEffects(txCtx, tx, p.Effects, now); err != nil {
			return err
		}
	}

	if p.Mutate != nil {
		if err := p.Mutate(txCtx, tx); err != nil {
			return err
		}
	}

	if p.Event != nil {
		if err := e.outboxRepo.Create(txCtx, tx, p.Event); err != nil {
			return err
		}
	}

	return tx.Commit(txCtx)
}

func rollbackReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return "invalid_state"
	case errors.Is(err, domain.ErrPrerequisiteAccountMissing):
		return "missing_account"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return "conflict"
	default:
		return "error"
	}
}

// applyEffects locks every referenced account in canonical key order,
// replays the effects sequentially against the in-memory balances, then
// persists one final balance per account.
func (e *Executor) applyEffects(ctx context.Context, tx Transaction, effects domain.EffectSet, now time.Time) error {
	keys := effects.Keys()

	accounts, err := e.accountRepo.ResolveForUpdate(ctx, tx, keys)
	if err != nil {
		return err
	}

	if len(accounts) != len(keys) {
		return domain.ErrPrerequisiteAccountMissing
	}

	byKey := make(map[domain.AccountKey]*domain.Account, len(accounts))
	for _, acc := range accounts {
		byKey[acc.Key()] = acc
	}

	// Effects are replayed in rule order so guarded debits see the
	// running balance, not just the final one.
	for _, eff := range effects {
		acc := byKey[eff.Key()]
		if acc == nil {
			return domain.ErrPrerequisiteAccountMissing
		}

		if eff.Guarded && eff.Delta < 0 {
			if err := acc.ValidateDebit(-eff.Delta); err != nil {
				return fmt.Errorf("%w: account %s/%s", err, acc.OwnerID, acc.Kind)
			}
		}

		acc.Balance += eff.Delta
	}

	for _, key := range keys {
		acc := byKey[key]
		if err := e.accountRepo.UpdateBalance(ctx, tx, acc.ID, acc.Balance, now); err != nil {
			return err
		}
	}

	return nil
}
