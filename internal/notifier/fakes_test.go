package notifier

import (
	"context"
	"errors"
	"sync"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/AbaSheger/eventflow/internal/domain/notification"
)

type fakeNotificationRepo struct {
	mu    sync.Mutex
	saved []notification.Notification
}

func (r *fakeNotificationRepo) Save(_ context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, *n)
	return nil
}

func (r *fakeNotificationRepo) ListAll(_ context.Context) ([]*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*notification.Notification, 0, len(r.saved))
	for i := len(r.saved) - 1; i >= 0; i-- {
		n := r.saved[i]
		out = append(out, &n)
	}
	return out, nil
}

// scriptedSender returns the scripted outcome for each successive call,
// then succeeds.
type scriptedSender struct {
	outcomes []error
	calls    int
	lastTo   string
}

func (s *scriptedSender) Send(_ context.Context, to, _, _ string) error {
	s.lastTo = to
	s.calls++
	if s.calls <= len(s.outcomes) {
		return s.outcomes[s.calls-1]
	}
	return nil
}

func retryableFailure() error {
	return &RetryableError{Err: errors.New("smtp connection refused")}
}

func nonRetryableFailure() error {
	return &NonRetryableError{Err: errors.New("mailbox does not exist")}
}

type fakeDLQ struct {
	mu       sync.Mutex
	err      error // every publish fails
	failures int   // the first n publishes fail
	messages []dlqMessage
}

type dlqMessage struct {
	Key     []byte
	Value   []byte
	Headers []kafkago.Header
}

func (d *fakeDLQ) SendMessage(_ context.Context, key, value []byte, headers ...kafkago.Header) error {
	if d.err != nil {
		return d.err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failures > 0 {
		d.failures--
		return errors.New("dead letter broker unavailable")
	}
	d.messages = append(d.messages, dlqMessage{Key: key, Value: value, Headers: headers})
	return nil
}

func (d *fakeDLQ) header(i int, key string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, h := range d.messages[i].Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
