package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AbaSheger/eventflow/internal/domain/notification"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	const sql = `
		INSERT INTO notifications (
			id, order_id, recipient_email, type, status, error_message, created_at
		)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	`

	_, err := r.pool.Exec(ctx, sql,
		n.ID, n.OrderID, n.RecipientEmail, string(n.Type), string(n.Status),
		n.ErrorMessage, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) ListAll(ctx context.Context) ([]*notification.Notification, error) {
	const sql = `
		SELECT id, order_id, recipient_email, type, status,
		       COALESCE(error_message, ''), created_at
		FROM notifications
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var items []*notification.Notification
	for rows.Next() {
		n := &notification.Notification{}
		if err := rows.Scan(&n.ID, &n.OrderID, &n.RecipientEmail, &n.Type,
			&n.Status, &n.ErrorMessage, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		items = append(items, n)
	}

	return items, rows.Err()
}
