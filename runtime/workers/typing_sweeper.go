package workers

import (
	"campus-chat/contract"
	"campus-chat/services"
	"context"
	"log/slog"
	"time"
)

// TypingSweeperWorker deletes expired typing states on every tick.
// Expiry timers normally clear them first; the sweep only catches leftovers.
type TypingSweeperWorker struct {
	log       *slog.Logger
	typing    services.ITypingTracker
	scheduler contract.Scheduler
	interval  time.Duration
}

func NewTypingSweeperWorker(log *slog.Logger,
	typing services.ITypingTracker,
	scheduler contract.Scheduler,
	interval time.Duration) *TypingSweeperWorker {
	if interval <= 0 {
		interval = services.DefaultTypingSweepInterval
	}
	return &TypingSweeperWorker{log: log, typing: typing, scheduler: scheduler, interval: interval}
}

func (w *TypingSweeperWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping typing sweep")
			return nil
		case <-ticker.C:
			if removed := w.typing.Sweep(w.scheduler.Now()); removed > 0 {
				w.log.Debug("Expired typing states removed", "count", removed)
			}
		}
	}
}
