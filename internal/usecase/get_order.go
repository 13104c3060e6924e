package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AbaSheger/eventflow/internal/domain/order"
)

type GetOrder struct {
	redisClient *redis.Client
	orders      order.Repository
}

func NewGetOrder(redisClient *redis.Client, orders order.Repository) *GetOrder {
	return &GetOrder{
		redisClient: redisClient,
		orders:      orders,
	}
}

// Execute is a read-through cache over the order store. The short TTL
// keeps a cancel visible within a second of the write.
func (uc *GetOrder) Execute(ctx context.Context, orderID string) (*order.Order, error) {
	cacheKey := fmt.Sprintf("order:%s", orderID)

	if uc.redisClient != nil {
		val, err := uc.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var o order.Order
			if err := json.Unmarshal([]byte(val), &o); err == nil {
				return &o, nil
			}
		}
	}

	o, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if uc.redisClient != nil {
		data, _ := json.Marshal(o)
		uc.redisClient.Set(ctx, cacheKey, data, 1*time.Second)
	}

	return o, nil
}
