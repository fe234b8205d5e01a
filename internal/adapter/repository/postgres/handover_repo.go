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

// DepositRepository implements usecase.DepositRepository.
type DepositRepository struct {
	pool *pgxpool.Pool
}

// NewDepositRepository creates a new DepositRepository.
func NewDepositRepository(pool *pgxpool.Pool) *DepositRepository {
	return &DepositRepository{pool: pool}
}

const depositColumns = `id, staff_id, shop_id, amount, status, created_at, updated_at`

// Create inserts a new deposit within a transaction.
func (r *DepositRepository) Create(ctx context.Context, tx usecase.Transaction, deposit *domain.Deposit) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO deposits (`+depositColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		deposit.ID, deposit.StaffID, deposit.ShopID, deposit.Amount,
		string(deposit.Status), deposit.CreatedAt, deposit.UpdatedAt,
	)

	return err
}

// GetByIDForUpdate retrieves a deposit with a FOR UPDATE lock.
func (r *DepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Deposit, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+depositColumns+` FROM deposits WHERE id = $1 FOR UPDATE`,
		id,
	)

	var d domain.Deposit
	var status string

	err := row.Scan(&d.ID, &d.StaffID, &d.ShopID, &d.Amount, &status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDepositNotFound
		}
		return nil, err
	}

	d.Status = domain.HandoverStatus(status)
	return &d, nil
}

// UpdateStatus updates a deposit's status.
func (r *DepositRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.HandoverStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE deposits SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDepositNotFound
	}

	return nil
}

// ListByShop lists deposits for a shop, newest first.
func (r *DepositRepository) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.Deposit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+depositColumns+` FROM deposits
		WHERE shop_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		shopID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []*domain.Deposit
	for rows.Next() {
		var d domain.Deposit
		var status string

		if err := rows.Scan(&d.ID, &d.StaffID, &d.ShopID, &d.Amount, &status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}

		d.Status = domain.HandoverStatus(status)
		deposits = append(deposits, &d)
	}

	return deposits, rows.Err()
}

// RefillRepository implements usecase.RefillRepository.
type RefillRepository struct {
	pool *pgxpool.Pool
}

// NewRefillRepository creates a new RefillRepository.
func NewRefillRepository(pool *pgxpool.Pool) *RefillRepository {
	return &RefillRepository{pool: pool}
}

const refillColumns = `id, admin_id, shop_id, amount, status, created_at, updated_at`

// Create inserts a new cash refill within a transaction.
func (r *RefillRepository) Create(ctx context.Context, tx usecase.Transaction, refill *domain.CashRefill) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO cash_refills (`+refillColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		refill.ID, refill.AdminID, refill.ShopID, refill.Amount,
		string(refill.Status), refill.CreatedAt, refill.UpdatedAt,
	)

	return err
}

// GetByIDForUpdate retrieves a refill with a FOR UPDATE lock.
func (r *RefillRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.CashRefill, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+refillColumns+` FROM cash_refills WHERE id = $1 FOR UPDATE`,
		id,
	)

	var cr domain.CashRefill
	var status string

	err := row.Scan(&cr.ID, &cr.AdminID, &cr.ShopID, &cr.Amount, &status, &cr.CreatedAt, &cr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRefillNotFound
		}
		return nil, err
	}

	cr.Status = domain.HandoverStatus(status)
	return &cr, nil
}

// UpdateStatus updates a refill's status.
func (r *RefillRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.HandoverStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE cash_refills SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRefillNotFound
	}

	return nil
}

// ListByShop lists refills for a shop, newest first.
func (r *RefillRepository) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.CashRefill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+refillColumns+` FROM cash_refills
		WHERE shop_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		shopID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refills []*domain.CashRefill
	for rows.Next() {
		var cr domain.CashRefill
		var status string

		if err := rows.Scan(&cr.ID, &cr.AdminID, &cr.ShopID, &cr.Amount, &status, &cr.CreatedAt, &cr.UpdatedAt); err != nil {
			return nil, err
		}

		cr.Status = domain.HandoverStatus(status)
		refills = append(refills, &cr)
	}

	return refills, rows.Err()
}
