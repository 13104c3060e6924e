package notifier

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/AbaSheger/eventflow/internal/config"
	"github.com/AbaSheger/eventflow/internal/domain/event"
)

// Sender is the fallible external mail call.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPSender struct {
	client *gomail.Client
	from   string
}

func NewSMTPSender(cfg config.Mail) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create mail client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.From}, nil
}

// Send classifies failures for the coordinator: a bad address cannot be
// fixed by retrying, a transport failure can.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return &NonRetryableError{Err: fmt.Errorf("invalid sender address %q: %w", s.from, err)}
	}
	if err := msg.To(to); err != nil {
		return &NonRetryableError{Err: fmt.Errorf("invalid recipient address %q: %w", to, err)}
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return &RetryableError{Err: fmt.Errorf("send mail to %s: %w", to, err)}
	}

	return nil
}

func confirmationEmail(ev event.OrderPlaced) (subject, body string) {
	subject = fmt.Sprintf("Order Confirmed - %s", ev.ProductName)
	body = fmt.Sprintf(`Hi there,

Your order has been placed successfully!

Order ID:     %s
Product:      %s
Quantity:     %d
Total Price:  $%s

Thank you for shopping with EventFlow!
`, ev.OrderID, ev.ProductName, ev.Quantity, ev.TotalPrice.StringFixed(2))
	return subject, body
}

func cancellationEmail(ev event.OrderCancelled) (subject, body string) {
	subject = fmt.Sprintf("Order Cancelled - %s", ev.ProductName)
	body = fmt.Sprintf(`Hi there,

Your order has been cancelled.

Order ID: %s
Product:  %s

If this was a mistake, please place a new order on our website.

- The EventFlow Team
`, ev.OrderID, ev.ProductName)
	return subject, body
}
