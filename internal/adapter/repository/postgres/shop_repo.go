package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sidibe/caisse/internal/domain"
)

// ShopRepository implements usecase.ShopRepository.
type ShopRepository struct {
	pool *pgxpool.Pool
}

// NewShopRepository creates a new ShopRepository.
func NewShopRepository(pool *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{pool: pool}
}

// GetScope loads the shop's admin and staff roster. Staff IDs come back
// in a stable order so effect fan-outs are deterministic.
func (r *ShopRepository) GetScope(ctx context.Context, shopID string) (domain.ShopScope, error) {
	var adminID string

	err := r.pool.QueryRow(ctx, `
		SELECT admin_id FROM shops WHERE id = $1`,
		shopID,
	).Scan(&adminID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ShopScope{}, domain.ErrShopNotFound
		}
		return domain.ShopScope{}, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT user_id FROM shop_members
		WHERE shop_id = $1 AND role = $2
		ORDER BY user_id`,
		shopID, string(domain.RoleStaff),
	)
	if err != nil {
		return domain.ShopScope{}, err
	}
	defer rows.Close()

	var staffIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return domain.ShopScope{}, err
		}
		staffIDs = append(staffIDs, id)
	}
	if err := rows.Err(); err != nil {
		return domain.ShopScope{}, err
	}

	return domain.ShopScope{
		ShopID:   shopID,
		AdminID:  adminID,
		StaffIDs: staffIDs,
	}, nil
}
