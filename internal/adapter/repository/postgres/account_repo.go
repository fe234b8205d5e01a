package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool  *pgxpool.Pool
	idGen usecase.IDGenerator
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator) *AccountRepository {
	return &AccountRepository{pool: pool, idGen: idGen}
}

// ResolveForUpdate upserts the accounts for the given keys at zero
// balance, then locks them with FOR UPDATE in key order. keys must
// already be unique and sorted; the ORDER BY matches the key ordering
// so concurrent transactions acquire row locks in the same sequence.
func (r *AccountRepository) ResolveForUpdate(ctx context.Context, tx usecase.Transaction, keys []domain.AccountKey) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	ids := make([]string, len(keys))
	owners := make([]string, len(keys))
	kinds := make([]string, len(keys))
	for i, key := range keys {
		ids[i] = r.idGen.Generate()
		owners[i] = key.OwnerID
		kinds[i] = string(key.Kind)
	}

	now := time.Now().UTC()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO accounts (id, owner_id, kind, balance, version, created_at, updated_at)
		SELECT unnest($1::text[]), unnest($2::text[]), unnest($3::text[]), 0, 0, $4, $4
		ON CONFLICT (owner_id, kind) DO NOTHING`,
		ids, owners, kinds, now,
	)
	if err != nil {
		return nil, err
	}

	rows, err := pgxTx.Query(ctx, `
		SELECT id, owner_id, kind, balance, version, created_at, updated_at
		FROM accounts
		WHERE (owner_id, kind) IN (
			SELECT unnest($1::text[]), unnest($2::text[])
		)
		ORDER BY owner_id, kind
		FOR UPDATE`,
		owners, kinds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0, len(keys))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

// UpdateBalance updates the balance of an account and bumps its version.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE accounts
		SET balance = $2, version = version + 1, updated_at = $3
		WHERE id = $1`,
		id, balance, updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// ListByOwner lists all accounts of one owner.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, kind, balance, version, created_at, updated_at
		FROM accounts
		WHERE owner_id = $1
		ORDER BY kind`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// ListByOwners lists all accounts of the given owners.
func (r *AccountRepository) ListByOwners(ctx context.Context, ownerIDs []string) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, kind, balance, version, created_at, updated_at
		FROM accounts
		WHERE owner_id = ANY($1)
		ORDER BY owner_id, kind`,
		ownerIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func collectAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	var accounts []*domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	var kind string

	err := row.Scan(&acc.ID, &acc.OwnerID, &kind, &acc.Balance, &acc.Version, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		return nil, err
	}

	acc.Kind = domain.AccountKind(kind)
	return &acc, nil
}
