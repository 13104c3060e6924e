package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/AbaSheger/eventflow/internal/domain/event"
	"github.com/AbaSheger/eventflow/internal/domain/order"
)

type PlaceOrder struct {
	orders    order.Repository
	publisher EventPublisher
}

func NewPlaceOrder(orders order.Repository, publisher EventPublisher) *PlaceOrder {
	return &PlaceOrder{
		orders:    orders,
		publisher: publisher,
	}
}

type PlaceOrderParams struct {
	CustomerEmail string          `json:"customer_email"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// Execute validates, persists the order, then fires a best-effort
// OrderPlaced publish. The write always lands before the publish is
// attempted, and a publish failure never rolls the write back.
func (uc *PlaceOrder) Execute(ctx context.Context, params PlaceOrderParams) (*order.Order, error) {
	if err := validatePlaceOrder(params.CustomerEmail, params.ProductName,
		params.Quantity, params.TotalPrice); err != nil {
		return nil, err
	}

	newOrder := order.New(params.CustomerEmail, params.ProductName,
		params.Quantity, params.TotalPrice)

	if err := uc.orders.Save(ctx, newOrder); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	slog.Info("order persisted",
		"order_id", newOrder.ID, "customer_email", newOrder.CustomerEmail)

	publishEvent(uc.publisher, event.TypeOrderPlaced, newOrder.ID, event.OrderPlaced{
		OrderID:       newOrder.ID,
		CustomerEmail: newOrder.CustomerEmail,
		ProductName:   newOrder.ProductName,
		Quantity:      newOrder.Quantity,
		TotalPrice:    newOrder.TotalPrice,
		OccurredAt:    newOrder.CreatedAt,
	})

	return newOrder, nil
}
