package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/AbaSheger/eventflow/internal/domain/event"
)

const producerName = "order-service"

// EventPublisher is the slice of the Kafka producer the command
// handlers need. Satisfied by infrastructure/kafka.Producer.
type EventPublisher interface {
	SendMessage(ctx context.Context, key, value []byte, headers ...kafkago.Header) error
}

// publishEvent fires the publish on its own goroutine and never reports
// back to the caller: the durable write already succeeded and the store
// is the source of truth, so a bus outage is logged, not surfaced.
// Uses a detached context so an ending HTTP request cannot cancel the
// in-flight publish.
func publishEvent(pub EventPublisher, eventType, orderID string, payload any) {
	go func() {
		raw, err := json.Marshal(payload)
		if err != nil {
			slog.Error("failed to marshal event payload",
				"type", eventType, "order_id", orderID, "error", err)
			return
		}

		msg := event.NewMessage(eventType, producerName, raw)
		value, err := json.Marshal(msg)
		if err != nil {
			slog.Error("failed to marshal event envelope",
				"type", eventType, "order_id", orderID, "error", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		header := kafkago.Header{Key: event.TypeHeader, Value: []byte(eventType)}
		if err := pub.SendMessage(ctx, []byte(orderID), value, header); err != nil {
			slog.Error("failed to publish event",
				"type", eventType, "order_id", orderID, "event_id", msg.ID, "error", err)
			return
		}

		slog.Info("event published",
			"type", eventType, "order_id", orderID, "event_id", msg.ID)
	}()
}
