package workers

import (
	"campus-chat/contract"
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"campus-chat/mocks"
	"campus-chat/observability"
	"campus-chat/scheduler"
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func runUntilCancelled(t *testing.T, ctx context.Context, run func(context.Context) error) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()
	return done
}

func TestTypingSweeper_SweepsWithSchedulerTime(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	typing := mocks.NewMockITypingTracker(ctrl)
	clock := scheduler.NewManual(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Given a tracker expecting sweeps at the virtual time
	var sweeps atomic.Int32
	typing.EXPECT().
		Sweep(clock.Now()).
		DoAndReturn(func(time.Time) int {
			sweeps.Add(1)
			return 1
		}).
		MinTimes(2)

	worker := NewTypingSweeperWorker(log, typing, clock, 5*time.Millisecond)
	done := runUntilCancelled(t, ctx, worker.Run)

	// Then the sweep runs on every tick until the context stops
	req.Eventually(func() bool { return sweeps.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	req.NoError(<-done)
}

func TestRetrySweeper_SweepsOnStartAndKeepsGoingOnError(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	queue := mocks.NewMockIDeliveryQueue(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Given a queue failing the first sweep and succeeding afterwards
	var sweeps atomic.Int32
	gomock.InOrder(
		queue.EXPECT().RetryDue(gomock.Any(), gomock.Any()).Return(0, errors.ErrInternal),
		queue.EXPECT().RetryDue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, contract.DeliveryAction) (int, error) {
				sweeps.Add(1)
				return 2, nil
			}).
			MinTimes(1),
	)

	action := func(context.Context, chat.Message) error { return nil }
	worker := NewRetrySweeperWorker(log, queue, action, 5*time.Millisecond)
	done := runUntilCancelled(t, ctx, worker.Run)

	// Then a failed sweep does not stop the worker
	req.Eventually(func() bool { return sweeps.Load() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()
	req.NoError(<-done)
}

func TestQueueDepth_SamplesEveryStatus(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	entries := mocks.NewMockIQueueRepository(ctrl)

	// Given two retrying entries and an unreadable FAILED status
	entries.EXPECT().ListEntries(chat.QueuePending).Return(nil, nil).AnyTimes()
	entries.EXPECT().ListEntries(chat.QueueDelivered).Return([]chat.QueueEntry{{}}, nil).AnyTimes()
	entries.EXPECT().ListEntries(chat.QueueRetry).Return([]chat.QueueEntry{{}, {}}, nil).AnyTimes()
	entries.EXPECT().ListEntries(chat.QueueFailed).Return(nil, errors.ErrInternal).AnyTimes()

	worker := NewQueueDepthWorker(log, entries, time.Hour)

	// When a sample is taken
	worker.sample()

	// Then each readable status is exported
	req.Equal(float64(2), testutil.ToFloat64(observability.QueueEntries.WithLabelValues(string(chat.QueueRetry))))
	req.Equal(float64(1), testutil.ToFloat64(observability.QueueEntries.WithLabelValues(string(chat.QueueDelivered))))
	req.Equal(float64(0), testutil.ToFloat64(observability.QueueEntries.WithLabelValues(string(chat.QueuePending))))
}
