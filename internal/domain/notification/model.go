package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeOrderPlaced    Type = "ORDER_PLACED"
	TypeOrderCancelled Type = "ORDER_CANCELLED"
)

type DeliveryStatus string

const (
	StatusSent   DeliveryStatus = "SENT"
	StatusFailed DeliveryStatus = "FAILED"
)

// Notification is one terminal delivery outcome. Records are append-only:
// a retried delivery produces a new row per attempt, never an update.
type Notification struct {
	ID             string         `json:"id"`
	OrderID        string         `json:"order_id"`
	RecipientEmail string         `json:"recipient_email"`
	Type           Type           `json:"type"`
	Status         DeliveryStatus `json:"status"`
	ErrorMessage   string         `json:"error_message,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

func New(orderID, recipientEmail string, typ Type) *Notification {
	return &Notification{
		ID:             uuid.New().String(),
		OrderID:        orderID,
		RecipientEmail: recipientEmail,
		Type:           typ,
		CreatedAt:      time.Now().UTC(),
	}
}

type Repository interface {
	Save(ctx context.Context, n *Notification) error
	ListAll(ctx context.Context) ([]*Notification, error)
}
