package workers

import (
	"campus-chat/domain/chat"
	"campus-chat/observability"
	"campus-chat/repositories"
	"context"
	"log/slog"
	"time"
)

var queueStatuses = []chat.QueueStatus{
	chat.QueuePending,
	chat.QueueRetry,
	chat.QueueDelivered,
	chat.QueueFailed,
}

// QueueDepthWorker periodically samples the delivery queue per status into
// the queue gauge. A failed sample is skipped, the next tick retries it.
type QueueDepthWorker struct {
	log            *slog.Logger
	entries        repositories.IQueueRepository
	metricInterval time.Duration
}

func NewQueueDepthWorker(log *slog.Logger,
	entries repositories.IQueueRepository,
	metricInterval time.Duration) *QueueDepthWorker {
	return &QueueDepthWorker{log: log, entries: entries, metricInterval: metricInterval}
}

func (w *QueueDepthWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping queue sampling")
			return nil
		case <-ticker.C:
			w.sample()
		}
	}
}

func (w *QueueDepthWorker) sample() {
	for _, status := range queueStatuses {
		entries, err := w.entries.ListEntries(status)
		if err != nil {
			w.log.Warn("Unable to sample queue", "status", status, "error", err)
			continue
		}
		observability.QueueEntries.WithLabelValues(string(status)).Set(float64(len(entries)))
	}
}
