package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/usecase"
)

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, actor_id, shop_id, label, amount, status, created_at, updated_at`

// Create inserts a new expense within a transaction.
func (r *ExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		expense.ID, expense.ActorID, expense.ShopID, expense.Label,
		expense.Amount, string(expense.Status), expense.CreatedAt, expense.UpdatedAt,
	)

	return err
}

// GetByID retrieves an expense without locking it.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+expenseColumns+` FROM expenses WHERE id = $1`,
		id,
	)

	return scanExpense(row)
}

// GetByIDForUpdate retrieves an expense with a FOR UPDATE lock.
func (r *ExpenseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+expenseColumns+` FROM expenses WHERE id = $1 FOR UPDATE`,
		id,
	)

	return scanExpense(row)
}

// UpdateStatus updates an expense's status.
func (r *ExpenseRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.ExpenseStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE expenses SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// ListByShop lists expenses for a shop, newest first.
func (r *ExpenseRepository) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+expenseColumns+` FROM expenses
		WHERE shop_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		shopID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	var status string

	err := row.Scan(
		&e.ID, &e.ActorID, &e.ShopID, &e.Label,
		&e.Amount, &status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}

	e.Status = domain.ExpenseStatus(status)
	return &e, nil
}
