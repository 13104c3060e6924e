package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPlaced    Status = "PLACED"
	StatusCancelled Status = "CANCELLED"
)

// ErrNotFound is returned when no order exists for the requested id.
var ErrNotFound = errors.New("order not found")

// ConflictError rejects an invalid lifecycle transition. The only legal
// transition is PLACED -> CANCELLED.
type ConflictError struct {
	OrderID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("order %s is already cancelled", e.OrderID)
}

type Order struct {
	ID            string          `json:"id"`
	CustomerEmail string          `json:"customer_email"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// New constructs a freshly placed order with a generated id. Input
// validation is the caller's job; New only assembles state.
func New(customerEmail, productName string, quantity int, totalPrice decimal.Decimal) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:            uuid.New().String(),
		CustomerEmail: customerEmail,
		ProductName:   productName,
		Quantity:      quantity,
		TotalPrice:    totalPrice,
		Status:        StatusPlaced,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Cancel flips the order to CANCELLED. Cancelling an order that is not
// PLACED is a conflict, not a no-op.
func (o *Order) Cancel() error {
	if o.Status == StatusCancelled {
		return &ConflictError{OrderID: o.ID}
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now().UTC()
	return nil
}

type Repository interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
}
