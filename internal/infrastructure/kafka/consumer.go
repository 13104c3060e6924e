package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic string, groupID string) *Consumer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: false, // Force IPv4
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,    // Process immediately
		MaxBytes: 10e6, // 10MB
		MaxWait:  1 * time.Second,
		Dialer:   dialer,
		// A consumer group with no committed offset starts from the
		// oldest retained message, matching at-least-once expectations.
		StartOffset: kafka.FirstOffset,
	})
	return &Consumer{reader: r}
}

// FetchMessage returns the next message without committing it. The
// caller commits only after the message is fully resolved.
func (c *Consumer) FetchMessage(ctx context.Context) (kafka.Message, error) {
	return c.reader.FetchMessage(ctx)
}

func (c *Consumer) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	return c.reader.CommitMessages(ctx, msgs...)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
