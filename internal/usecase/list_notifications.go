package usecase

import (
	"context"
	"fmt"

	"github.com/AbaSheger/eventflow/internal/domain/notification"
)

type ListNotifications struct {
	notifications notification.Repository
}

func NewListNotifications(notifications notification.Repository) *ListNotifications {
	return &ListNotifications{notifications: notifications}
}

// Execute returns every recorded delivery outcome, most recent first.
func (uc *ListNotifications) Execute(ctx context.Context) ([]*notification.Notification, error) {
	items, err := uc.notifications.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}
