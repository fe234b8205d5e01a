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

// StockMovementRepository implements usecase.StockMovementRepository.
type StockMovementRepository struct {
	pool *pgxpool.Pool
}

// NewStockMovementRepository creates a new StockMovementRepository.
func NewStockMovementRepository(pool *pgxpool.Pool) *StockMovementRepository {
	return &StockMovementRepository{pool: pool}
}

const movementColumns = `id, product_id, actor_id, shop_id, quantity, direction, status, unit_price, created_at, updated_at`

// Create inserts a new stock movement within a transaction.
func (r *StockMovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.StockMovement) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO stock_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		movement.ID, movement.ProductID, movement.ActorID, movement.ShopID,
		movement.Quantity, string(movement.Direction), string(movement.Status),
		movement.UnitPrice, movement.CreatedAt, movement.UpdatedAt,
	)

	return err
}

// GetByID retrieves a movement without locking it.
func (r *StockMovementRepository) GetByID(ctx context.Context, id string) (*domain.StockMovement, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`,
		id,
	)

	return scanMovement(row)
}

// GetByIDForUpdate retrieves a movement with a FOR UPDATE lock.
func (r *StockMovementRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.StockMovement, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+movementColumns+` FROM stock_movements WHERE id = $1 FOR UPDATE`,
		id,
	)

	return scanMovement(row)
}

// Update persists a movement's quantity and status.
func (r *StockMovementRepository) Update(ctx context.Context, tx usecase.Transaction, movement *domain.StockMovement) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE stock_movements
		SET quantity = $2, status = $3, updated_at = $4
		WHERE id = $1`,
		movement.ID, movement.Quantity, string(movement.Status), movement.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}

	return nil
}

// ListByProduct lists movements for a product, newest first.
func (r *StockMovementRepository) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*domain.StockMovement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movementColumns+` FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		productID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*domain.StockMovement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}

	return movements, rows.Err()
}

func scanMovement(row pgx.Row) (*domain.StockMovement, error) {
	var m domain.StockMovement
	var direction, status string

	err := row.Scan(
		&m.ID, &m.ProductID, &m.ActorID, &m.ShopID,
		&m.Quantity, &direction, &status,
		&m.UnitPrice, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}
		return nil, err
	}

	m.Direction = domain.StockDirection(direction)
	m.Status = domain.MovementStatus(status)

	return &m, nil
}

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, shop_id, name, purchase_price, sale_price, stock, created_at, updated_at`

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1`,
		id,
	)

	return scanProduct(row)
}

// GetByIDForUpdate retrieves a product with a FOR UPDATE lock.
func (r *ProductRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Product, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`,
		id,
	)

	return scanProduct(row)
}

// AdjustStock applies a signed delta to a product's stock quantity.
func (r *ProductRepository) AdjustStock(ctx context.Context, tx usecase.Transaction, id string, delta int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = $3 WHERE id = $1`,
		id, delta, updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product

	err := row.Scan(
		&p.ID, &p.ShopID, &p.Name, &p.PurchasePrice, &p.SalePrice,
		&p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	return &p, nil
}
