package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type discriminators carried in the envelope and duplicated in the
// TypeHeader of the Kafka message so consumers can route without
// decoding the payload first.
const (
	TypeOrderPlaced    = "OrderPlaced"
	TypeOrderCancelled = "OrderCancelled"

	TypeHeader = "event-type"
)

// Message is the envelope published to Kafka. Payload is kept as raw
// JSON so the envelope can be routed before the variant is decoded.
type Message struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Producer   string          `json:"producer"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type OrderPlaced struct {
	OrderID       string          `json:"order_id"`
	CustomerEmail string          `json:"customer_email"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type OrderCancelled struct {
	OrderID       string    `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	ProductName   string    `json:"product_name"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewMessage wraps an already-marshalled payload in a fresh envelope.
func NewMessage(eventType, producer string, payload []byte) Message {
	return Message{
		ID:         uuid.New().String(),
		Type:       eventType,
		Producer:   producer,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
