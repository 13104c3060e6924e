package notifier

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/AbaSheger/eventflow/internal/config"
	"github.com/AbaSheger/eventflow/internal/domain/event"
)

// Headers attached to dead-lettered messages alongside the verbatim
// original key and value.
const (
	HeaderErrorClass        = "dlt-error-class"
	HeaderErrorMessage      = "dlt-error-message"
	HeaderOriginalTopic     = "dlt-original-topic"
	HeaderOriginalPartition = "dlt-original-partition"
	HeaderOriginalOffset    = "dlt-original-offset"
)

const (
	errClassRetryable    = "RetryableDeliveryFailure"
	errClassNonRetryable = "NonRetryableDeliveryFailure"
)

type Processor interface {
	Process(ctx context.Context, msg event.Message) error
}

type DeadLetterPublisher interface {
	SendMessage(ctx context.Context, key, value []byte, headers ...kafkago.Header) error
}

// attemptState is the per-message retry state machine.
type attemptState int

const (
	stateAttempting attemptState = iota
	stateSucceeded
	stateDeadLettered
)

// Coordinator resolves each consumed message into success, a scheduled
// retry, or a dead-letter. The backoff wait is a genuine suspension:
// nothing else on the partition advances while it sleeps.
type Coordinator struct {
	codec     *event.Codec
	processor Processor
	dlq       DeadLetterPublisher
	retry     config.Retry
}

func NewCoordinator(codec *event.Codec, processor Processor, dlq DeadLetterPublisher, retry config.Retry) *Coordinator {
	return &Coordinator{
		codec:     codec,
		processor: processor,
		dlq:       dlq,
		retry:     retry,
	}
}

// Resolve drives Handle until the message reaches a terminal
// resolution. An unresolved message (an unpublishable dead letter) is
// retried in place rather than skipped: fetching forward would let a
// later commit on the same partition implicitly acknowledge this
// offset and lose the message. Returns only a cancelled context.
func (c *Coordinator) Resolve(ctx context.Context, msg kafkago.Message) error {
	for {
		err := c.Handle(ctx, msg)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		slog.Error("message unresolved, retrying in place",
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retry.InitialBackoff):
		}
	}
}

// Handle fully resolves one message. A nil return means the offset may
// be committed; a non-nil return means resolution was not reached
// (cancelled context, or an unpublishable dead-letter) and the message
// must not be committed past.
func (c *Coordinator) Handle(ctx context.Context, msg kafkago.Message) error {
	env, err := c.codec.DecodeMessage(msg.Value)
	if errors.Is(err, event.ErrUnknownType) {
		slog.Warn("untrusted event type, acknowledging without processing",
			"type", env.Type, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
		return nil
	}
	if err != nil {
		// Malformed envelope: retrying cannot fix it.
		slog.Error("undecodable message, dead-lettering",
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
		return c.deadLetter(ctx, msg, &NonRetryableError{Err: err})
	}

	slog.Debug("received event",
		"type", env.Type, "event_id", env.ID,
		"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)

	state := stateAttempting
	attempt := 0
	var lastErr error

	for state == stateAttempting {
		attempt++
		lastErr = c.processor.Process(ctx, env)

		switch {
		case lastErr == nil:
			state = stateSucceeded

		case isNonRetryable(lastErr):
			deliveryFailures.Inc()
			state = stateDeadLettered

		case attempt >= c.retry.MaxAttempts:
			deliveryFailures.Inc()
			slog.Error("delivery attempts exhausted",
				"event_id", env.ID, "attempts", attempt, "error", lastErr)
			state = stateDeadLettered

		default:
			deliveryFailures.Inc()
			delay := c.backoffDelay(attempt)
			slog.Info("delivery failed, scheduling retry",
				"event_id", env.ID, "attempt", attempt, "max_attempts", c.retry.MaxAttempts,
				"backoff", delay, "error", lastErr)
			retriesScheduled.Inc()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	if state == stateDeadLettered {
		return c.deadLetter(ctx, msg, lastErr)
	}

	eventsProcessed.Inc()
	return nil
}

func isNonRetryable(err error) bool {
	var nonRetryable *NonRetryableError
	return errors.As(err, &nonRetryable)
}

// backoffDelay computes initial * multiplier^(n-1) for attempt n.
func (c *Coordinator) backoffDelay(attempt int) time.Duration {
	factor := math.Pow(c.retry.Multiplier, float64(attempt-1))
	return time.Duration(float64(c.retry.InitialBackoff) * factor)
}

// deadLetter republishes the original message verbatim onto the
// dead-letter topic, augmented with failure metadata headers.
func (c *Coordinator) deadLetter(ctx context.Context, msg kafkago.Message, cause error) error {
	headers := append(msg.Headers,
		kafkago.Header{Key: HeaderErrorClass, Value: []byte(errorClass(cause))},
		kafkago.Header{Key: HeaderErrorMessage, Value: []byte(cause.Error())},
		kafkago.Header{Key: HeaderOriginalTopic, Value: []byte(msg.Topic)},
		kafkago.Header{Key: HeaderOriginalPartition, Value: []byte(strconv.Itoa(msg.Partition))},
		kafkago.Header{Key: HeaderOriginalOffset, Value: []byte(strconv.FormatInt(msg.Offset, 10))},
	)

	if err := c.dlq.SendMessage(ctx, msg.Key, msg.Value, headers...); err != nil {
		slog.Error("failed to publish to dead-letter topic",
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
		return err
	}

	deadLettered.Inc()
	slog.Warn("message dead-lettered",
		"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "cause", cause)
	return nil
}

func errorClass(err error) string {
	if isNonRetryable(err) {
		return errClassNonRetryable
	}
	return errClassRetryable
}
