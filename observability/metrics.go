// Package observability exposes the Prometheus metrics of the messaging core.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Connections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "campus_chat_connections",
			Help: "Open connections",
		},
	)

	OnlineUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "campus_chat_online_users",
			Help: "Users with at least one open connection",
		},
	)

	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_chat_messages_sent_total",
			Help: "Acknowledged sends",
		},
		[]string{"status"}, // "sent" or "duplicate"
	)

	DeliveryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_chat_delivery_attempts_total",
			Help: "Fan-out attempts by outcome",
		},
		[]string{"outcome"}, // "delivered", "retry" or "failed"
	)

	ReadPromotions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campus_chat_read_promotions_total",
			Help: "Messages promoted to READ",
		},
	)

	TypingExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campus_chat_typing_expired_total",
			Help: "Typing states cleared by their timer or the sweeper",
		},
	)

	OperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_chat_operation_errors_total",
			Help: "Inbound operations rejected, by operation and kind",
		},
		[]string{"operation", "kind"},
	)

	DroppedEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campus_chat_dropped_events_total",
			Help: "Events dropped because a connection buffer was full",
		},
	)

	QueueEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "campus_chat_queue_entries",
			Help: "Delivery queue entries by status",
		},
		[]string{"status"},
	)
)
