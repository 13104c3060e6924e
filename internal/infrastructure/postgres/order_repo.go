package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AbaSheger/eventflow/internal/domain/order"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Save upserts the order row. Placing inserts, cancelling updates; both
// are single atomic statements.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	const sql = `
		INSERT INTO orders (
			id, customer_email, product_name, quantity, total_price,
			status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, sql,
		o.ID, o.CustomerEmail, o.ProductName, o.Quantity, o.TotalPrice,
		string(o.Status), o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}

	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	const sql = `
		SELECT id, customer_email, product_name, quantity, total_price,
		       status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var o order.Order
	err := r.pool.QueryRow(ctx, sql, id).Scan(
		&o.ID, &o.CustomerEmail, &o.ProductName, &o.Quantity, &o.TotalPrice,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order by id: %w", err)
	}

	return &o, nil
}
