package notifier

import (
	"context"
	"log/slog"

	"github.com/AbaSheger/eventflow/internal/domain/event"
	"github.com/AbaSheger/eventflow/internal/domain/notification"
)

// Pipeline turns one consumed domain event into one delivery attempt
// plus one recorded outcome.
type Pipeline struct {
	notifications notification.Repository
	sender        Sender
}

func NewPipeline(notifications notification.Repository, sender Sender) *Pipeline {
	return &Pipeline{
		notifications: notifications,
		sender:        sender,
	}
}

// Process dispatches on the envelope's type discriminator. Unrecognized
// types are logged and acknowledged without a record; newer producers
// must not break this consumer.
func (p *Pipeline) Process(ctx context.Context, msg event.Message) error {
	switch msg.Type {
	case event.TypeOrderPlaced:
		var ev event.OrderPlaced
		if err := event.DecodePayload(msg, &ev); err != nil {
			return &NonRetryableError{Err: err}
		}
		return p.deliver(ctx, ev.OrderID, ev.CustomerEmail, notification.TypeOrderPlaced,
			func(ctx context.Context) error {
				subject, body := confirmationEmail(ev)
				return p.sender.Send(ctx, ev.CustomerEmail, subject, body)
			})

	case event.TypeOrderCancelled:
		var ev event.OrderCancelled
		if err := event.DecodePayload(msg, &ev); err != nil {
			return &NonRetryableError{Err: err}
		}
		return p.deliver(ctx, ev.OrderID, ev.CustomerEmail, notification.TypeOrderCancelled,
			func(ctx context.Context) error {
				subject, body := cancellationEmail(ev)
				return p.sender.Send(ctx, ev.CustomerEmail, subject, body)
			})

	default:
		slog.Warn("unknown event type, skipping", "type", msg.Type, "event_id", msg.ID)
		return nil
	}
}

// deliver sends and records. The outcome row is written on both exit
// paths, and a failure is returned after being recorded so the
// coordinator can still retry or dead-letter.
func (p *Pipeline) deliver(ctx context.Context, orderID, recipient string, typ notification.Type, send func(context.Context) error) (err error) {
	n := notification.New(orderID, recipient, typ)

	defer func() {
		if saveErr := p.notifications.Save(ctx, n); saveErr != nil {
			slog.Error("failed to record notification outcome",
				"order_id", orderID, "type", typ, "error", saveErr)
		}
	}()

	if err = send(ctx); err != nil {
		slog.Error("failed to send notification email",
			"order_id", orderID, "recipient", recipient, "error", err)
		n.Status = notification.StatusFailed
		n.ErrorMessage = err.Error()
		return err
	}

	n.Status = notification.StatusSent
	slog.Info("notification email sent", "order_id", orderID, "recipient", recipient, "type", typ)
	return nil
}
