package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	ChiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/AbaSheger/eventflow/internal/api/middleware"
)

// NewRouter wires the order-service HTTP surface.
func NewRouter(h *Handlers, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	r.Use(ChiMiddleware.Logger)
	r.Use(ChiMiddleware.Recoverer)
	r.Use(ChiMiddleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.With(middleware.Idempotency(redisClient)).Post("/", h.PlaceOrder)
		r.Post("/{id}/cancel", h.CancelOrder)
		r.Get("/{id}", h.GetOrder)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// NewNotificationRouter wires the notification-service HTTP surface.
func NewNotificationRouter(h *NotificationHandlers) http.Handler {
	r := chi.NewRouter()

	r.Use(ChiMiddleware.Logger)
	r.Use(ChiMiddleware.Recoverer)
	r.Use(ChiMiddleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/api/notifications", h.ListNotifications)

	r.Handle("/metrics", promhttp.Handler())

	return r
}
