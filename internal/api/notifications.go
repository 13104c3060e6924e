package api

import (
	"encoding/json"
	"net/http"

	"github.com/AbaSheger/eventflow/internal/domain/notification"
	"github.com/AbaSheger/eventflow/internal/usecase"
)

type NotificationHandlers struct {
	listUC *usecase.ListNotifications
}

func NewNotificationHandlers(listUC *usecase.ListNotifications) *NotificationHandlers {
	return &NotificationHandlers{listUC: listUC}
}

// ListNotifications returns every delivery outcome, newest first.
func (h *NotificationHandlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	items, err := h.listUC.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if items == nil {
		items = []*notification.Notification{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
