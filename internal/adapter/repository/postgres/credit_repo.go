package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/usecase"
)

// CreditRepository implements usecase.CreditRepository.
type CreditRepository struct {
	pool *pgxpool.Pool
}

// NewCreditRepository creates a new CreditRepository.
func NewCreditRepository(pool *pgxpool.Pool) *CreditRepository {
	return &CreditRepository{pool: pool}
}

const creditColumns = `id, reference, owner_id, client_id, shop_id, direction, kind,
	amount, amount_paid, amount_remaining, status, created_at, updated_at`

// Create inserts a new credit within a transaction.
func (r *CreditRepository) Create(ctx context.Context, tx usecase.Transaction, credit *domain.Credit) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO credits (`+creditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		credit.ID, credit.Reference, credit.OwnerID, credit.ClientID, credit.ShopID,
		string(credit.Direction), string(credit.Kind),
		credit.Amount, credit.AmountPaid, credit.AmountRemaining,
		string(credit.Status), credit.CreatedAt, credit.UpdatedAt,
	)

	return err
}

// GetByReference retrieves a credit by its reference.
func (r *CreditRepository) GetByReference(ctx context.Context, reference string) (*domain.Credit, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+creditColumns+` FROM credits WHERE reference = $1`,
		reference,
	)

	return scanCredit(row)
}

// GetByReferenceForUpdate retrieves a credit with a FOR UPDATE lock.
func (r *CreditRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, reference string) (*domain.Credit, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+creditColumns+` FROM credits WHERE reference = $1 FOR UPDATE`,
		reference,
	)

	return scanCredit(row)
}

// Update persists the credit's amounts and status.
func (r *CreditRepository) Update(ctx context.Context, tx usecase.Transaction, credit *domain.Credit) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE credits
		SET amount_paid = $2, amount_remaining = $3, status = $4, updated_at = $5
		WHERE reference = $1`,
		credit.Reference, credit.AmountPaid, credit.AmountRemaining,
		string(credit.Status), credit.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCreditNotFound
	}

	return nil
}

// ListByShop lists credits for a shop, newest first.
func (r *CreditRepository) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.Credit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+creditColumns+` FROM credits
		WHERE shop_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		shopID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credits []*domain.Credit
	for rows.Next() {
		credit, err := scanCredit(rows)
		if err != nil {
			return nil, err
		}
		credits = append(credits, credit)
	}

	return credits, rows.Err()
}

func scanCredit(row pgx.Row) (*domain.Credit, error) {
	var c domain.Credit
	var direction, kind, status string

	err := row.Scan(
		&c.ID, &c.Reference, &c.OwnerID, &c.ClientID, &c.ShopID,
		&direction, &kind,
		&c.Amount, &c.AmountPaid, &c.AmountRemaining,
		&status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCreditNotFound
		}
		return nil, err
	}

	c.Direction = domain.CreditDirection(direction)
	c.Kind = domain.CreditKind(kind)
	c.Status = domain.CreditStatus(status)

	return &c, nil
}
