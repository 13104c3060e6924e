package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbaSheger/eventflow/internal/domain/event"
	"github.com/AbaSheger/eventflow/internal/domain/order"
)

func waitForPublish(t *testing.T, p *fakePublisher) publishedMessage {
	t.Helper()
	select {
	case msg := <-p.published:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event publish")
		return publishedMessage{}
	}
}

func TestPlaceOrderPersistsAndPublishes(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := newFakePublisher(repo)
	uc := NewPlaceOrder(repo, pub)

	o, err := uc.Execute(context.Background(), PlaceOrderParams{
		CustomerEmail: "a@x.com",
		ProductName:   "Widget",
		Quantity:      2,
		TotalPrice:    decimal.RequireFromString("29.99"),
	})
	require.NoError(t, err)

	assert.Equal(t, order.StatusPlaced, o.Status)
	assert.Equal(t, "a@x.com", o.CustomerEmail)
	assert.Equal(t, "Widget", o.ProductName)
	assert.Equal(t, 2, o.Quantity)

	stored, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPlaced, stored.Status)

	msg := waitForPublish(t, pub)
	assert.Equal(t, o.ID, string(msg.Key))
	// The durable write must land before the publish is attempted.
	assert.True(t, msg.OrderPersisted)

	var env event.Message
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, event.TypeOrderPlaced, env.Type)

	var ev event.OrderPlaced
	require.NoError(t, json.Unmarshal(env.Payload, &ev))
	assert.Equal(t, o.ID, ev.OrderID)
	assert.Equal(t, 2, ev.Quantity)
	assert.True(t, decimal.RequireFromString("29.99").Equal(ev.TotalPrice))

	typeHeader := ""
	for _, h := range msg.Headers {
		if h.Key == event.TypeHeader {
			typeHeader = string(h.Value)
		}
	}
	assert.Equal(t, event.TypeOrderPlaced, typeHeader)
}

func TestPlaceOrderGeneratesDistinctIDs(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := newFakePublisher(repo)
	uc := NewPlaceOrder(repo, pub)

	params := PlaceOrderParams{
		CustomerEmail: "a@x.com",
		ProductName:   "Widget",
		Quantity:      1,
		TotalPrice:    decimal.NewFromInt(5),
	}

	first, err := uc.Execute(context.Background(), params)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), params)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestPlaceOrderValidationListsEveryInvalidField(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := newFakePublisher(repo)
	uc := NewPlaceOrder(repo, pub)

	_, err := uc.Execute(context.Background(), PlaceOrderParams{
		CustomerEmail: "not-an-email",
		ProductName:   "",
		Quantity:      0,
		TotalPrice:    decimal.Zero,
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 4)
	assert.Contains(t, validationErr.Fields, "customer_email")
	assert.Contains(t, validationErr.Fields, "product_name")
	assert.Contains(t, validationErr.Fields, "quantity")
	assert.Contains(t, validationErr.Fields, "total_price")

	// Validation rejects before any write or publish.
	assert.Empty(t, repo.orders)
	assert.Empty(t, pub.published)
}

func TestPlaceOrderPublishFailureNotSurfaced(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := newFakePublisher(repo)
	pub.err = assert.AnError
	uc := NewPlaceOrder(repo, pub)

	o, err := uc.Execute(context.Background(), PlaceOrderParams{
		CustomerEmail: "a@x.com",
		ProductName:   "Widget",
		Quantity:      1,
		TotalPrice:    decimal.NewFromInt(10),
	})

	// The write succeeded, so the caller never sees the publish failure.
	require.NoError(t, err)
	waitForPublish(t, pub)

	stored, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPlaced, stored.Status)
}
