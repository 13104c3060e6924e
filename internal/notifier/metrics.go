package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_events_processed_total",
		Help: "The total number of events delivered successfully",
	})
	deliveryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_delivery_failures_total",
		Help: "The total number of failed delivery attempts",
	})
	retriesScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_retries_scheduled_total",
		Help: "The total number of redeliveries scheduled after backoff",
	})
	deadLettered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_dead_lettered_total",
		Help: "The total number of messages republished to the dead-letter topic",
	})
)
