package workers

import (
	"campus-chat/contract"
	"campus-chat/services"
	"context"
	"log/slog"
	"time"
)

const DefaultRetrySweepInterval = 30 * time.Second

// RetrySweeperWorker re-attempts due RETRY entries that lost their timer,
// typically because the process restarted. It sweeps once on start.
type RetrySweeperWorker struct {
	log      *slog.Logger
	queue    services.IDeliveryQueue
	action   contract.DeliveryAction
	interval time.Duration
}

func NewRetrySweeperWorker(log *slog.Logger,
	queue services.IDeliveryQueue,
	action contract.DeliveryAction,
	interval time.Duration) *RetrySweeperWorker {
	if interval <= 0 {
		interval = DefaultRetrySweepInterval
	}
	return &RetrySweeperWorker{log: log, queue: queue, action: action, interval: interval}
}

func (w *RetrySweeperWorker) Run(ctx context.Context) error {
	w.sweep(ctx)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping retry sweep")
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *RetrySweeperWorker) sweep(ctx context.Context) {
	attempted, err := w.queue.RetryDue(ctx, w.action)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error("Retry sweep failed", "error", err)
		}
		return
	}
	if attempted > 0 {
		w.log.Info("Due deliveries re-attempted", "count", attempted)
	}
}
