package usecase

import (
	"context"
	"fmt"

	"github.com/AbaSheger/eventflow/internal/domain/event"
	"github.com/AbaSheger/eventflow/internal/domain/order"
)

type CancelOrder struct {
	orders    order.Repository
	publisher EventPublisher
}

func NewCancelOrder(orders order.Repository, publisher EventPublisher) *CancelOrder {
	return &CancelOrder{
		orders:    orders,
		publisher: publisher,
	}
}

// Execute flips a PLACED order to CANCELLED with the same
// write-then-best-effort-publish semantics as placing.
func (uc *CancelOrder) Execute(ctx context.Context, orderID string) (*order.Order, error) {
	o, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.Cancel(); err != nil {
		return nil, err
	}

	if err := uc.orders.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	publishEvent(uc.publisher, event.TypeOrderCancelled, o.ID, event.OrderCancelled{
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
		ProductName:   o.ProductName,
		OccurredAt:    o.UpdatedAt,
	})

	return o, nil
}
