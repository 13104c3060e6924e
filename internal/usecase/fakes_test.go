package usecase

import (
	"context"
	"sync"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/AbaSheger/eventflow/internal/domain/order"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]order.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]order.Order{}}
}

func (r *fakeOrderRepo) Save(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	copied := o
	return &copied, nil
}

type publishedMessage struct {
	Key     []byte
	Value   []byte
	Headers []kafkago.Header

	// OrderPersisted records whether the order row existed in the store
	// when the publish was attempted.
	OrderPersisted bool
}

// fakePublisher captures publishes on a channel so tests can wait for
// the fire-and-forget goroutine.
type fakePublisher struct {
	repo      *fakeOrderRepo
	err       error
	published chan publishedMessage
}

func newFakePublisher(repo *fakeOrderRepo) *fakePublisher {
	return &fakePublisher{
		repo:      repo,
		published: make(chan publishedMessage, 8),
	}
}

func (p *fakePublisher) SendMessage(ctx context.Context, key, value []byte, headers ...kafkago.Header) error {
	persisted := false
	if p.repo != nil {
		if _, err := p.repo.FindByID(ctx, string(key)); err == nil {
			persisted = true
		}
	}
	p.published <- publishedMessage{
		Key:            key,
		Value:          value,
		Headers:        headers,
		OrderPersisted: persisted,
	}
	return p.err
}
