package services

import (
	"campus-chat/contract"
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"campus-chat/mocks"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newQueue(f fixture) *DeliveryQueue {
	return NewDeliveryQueue(f.log, f.queue, f.messages, f.clock, chat.DefaultMaxRetries, chat.DefaultBackoff)
}

func failing(times int, calls *int) contract.DeliveryAction {
	return func(context.Context, chat.Message) error {
		*calls++
		if *calls <= times {
			return fmt.Errorf("attempt %d failed", *calls)
		}
		return nil
	}
}

func TestDeliveryQueue_SuccessMarksEntryAndMessageDelivered(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	queue := newQueue(f)
	message := f.storeMessage(t, "r1", "u1", 1)

	entry, err := queue.Enqueue(ctx, message)
	req.NoError(err)
	req.Equal(chat.QueuePending, entry.Status)

	calls := 0
	entry, err = queue.AttemptDelivery(ctx, message, failing(0, &calls))
	req.NoError(err)
	req.Equal(1, calls)
	req.Equal(chat.QueueDelivered, entry.Status)

	stored, err := f.messages.GetMessage(message.ID)
	req.NoError(err)
	req.Equal(chat.StatusDelivered, stored.Status)
}

func TestDeliveryQueue_EnqueueTwiceIsDuplicate(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	queue := newQueue(f)
	message := f.storeMessage(t, "r1", "u1", 1)

	_, err := queue.Enqueue(ctx, message)
	req.NoError(err)
	_, err = queue.Enqueue(ctx, message)
	req.ErrorIs(err, errors.ErrDuplicateEntry)
}

func TestDeliveryQueue_FailsTwiceThenSucceeds(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	queue := newQueue(f)
	message := f.storeMessage(t, "r1", "u1", 1)
	calls := 0

	// Given a first attempt that fails
	entry, err := queue.AttemptDelivery(ctx, message, failing(2, &calls))
	req.NoError(err)
	req.Equal(chat.QueueRetry, entry.Status)
	req.Equal(1, entry.RetryCount)
	req.Equal(epoch.Add(time.Second), entry.NextRetryAt)

	// When the first backoff elapses the second attempt fails too
	f.clock.Advance(time.Second)
	req.Equal(2, calls)
	entry, err = f.queue.GetEntry(message.ID)
	req.NoError(err)
	req.Equal(chat.QueueRetry, entry.Status)
	req.Equal(2, entry.RetryCount)

	// Then the third attempt after five more seconds delivers
	f.clock.Advance(5 * time.Second)
	req.Equal(3, calls)
	entry, err = f.queue.GetEntry(message.ID)
	req.NoError(err)
	req.Equal(chat.QueueDelivered, entry.Status)
	req.Equal(0, f.clock.Pending())

	f.clock.Advance(time.Minute)
	req.Equal(3, calls)
}

func TestDeliveryQueue_ExhaustionFailsEntryButDeliversMessage(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	queue := newQueue(f)
	message := f.storeMessage(t, "r1", "u1", 1)
	calls := 0

	_, err := queue.AttemptDelivery(ctx, message, failing(100, &calls))
	req.NoError(err)
	f.clock.Advance(time.Hour)

	req.Equal(1+chat.DefaultMaxRetries, calls)
	entry, err := f.queue.GetEntry(message.ID)
	req.NoError(err)
	req.Equal(chat.QueueFailed, entry.Status)
	req.Equal(chat.DefaultMaxRetries, entry.RetryCount)
	req.Equal("attempt 4 failed", entry.LastError)

	stored, err := f.messages.GetMessage(message.ID)
	req.NoError(err)
	req.Equal(chat.StatusDelivered, stored.Status)

	// Terminal entries are not attempted again
	_, err = queue.AttemptDelivery(ctx, message, failing(100, &calls))
	req.NoError(err)
	req.Equal(1+chat.DefaultMaxRetries, calls)
}

func TestDeliveryQueue_BackoffReusesLastDelay(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	queue := NewDeliveryQueue(f.log, f.queue, f.messages, f.clock, 5, chat.DefaultBackoff)
	message := f.storeMessage(t, "r1", "u1", 1)
	calls := 0

	_, err := queue.AttemptDelivery(ctx, message, failing(100, &calls))
	req.NoError(err)
	f.clock.Advance(1*time.Second + 5*time.Second + 15*time.Second)
	req.Equal(4, calls)

	entry, err := f.queue.GetEntry(message.ID)
	req.NoError(err)
	req.Equal(4, entry.RetryCount)
	req.Equal(f.clock.Now().Add(15*time.Second), entry.NextRetryAt)
}

func TestDeliveryQueue_RetryDueOnlyPicksOrphanedEntries(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	queue := newQueue(f)
	message := f.storeMessage(t, "r1", "u1", 1)
	calls := 0

	_, err := queue.AttemptDelivery(ctx, message, failing(1, &calls))
	req.NoError(err)

	// Nothing is due before the backoff elapses
	f.clock.Advance(500 * time.Millisecond)
	attempted, err := queue.RetryDue(ctx, failing(0, new(int)))
	req.NoError(err)
	req.Zero(attempted)

	// Given the timers are lost, as after a restart
	queue.Stop()
	f.clock.Advance(time.Second)
	req.Equal(1, calls)
	due, err := queue.PendingRetries(ctx, f.clock.Now())
	req.NoError(err)
	req.Len(due, 1)

	// Then a fresh queue picks the orphaned entry up
	restarted := newQueue(f)
	attempted, err = restarted.RetryDue(ctx, failing(1, &calls))
	req.NoError(err)
	req.Equal(1, attempted)
	entry, err := f.queue.GetEntry(message.ID)
	req.NoError(err)
	req.Equal(chat.QueueDelivered, entry.Status)
}

func TestDeliveryQueue_RetryDueSkipsEntryRearmedSinceListing(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()
	f := newFixture(t)
	entries := mocks.NewMockIQueueRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	queue := NewDeliveryQueue(f.log, entries, messages, f.clock, chat.DefaultMaxRetries, chat.DefaultBackoff)
	message := chat.Message{ID: uuid.New(), Room: "r1", SenderID: "u1"}

	// Given an entry listed as due that another attempt pushed to a later retry
	listed := chat.QueueEntry{MessageID: message.ID, Room: "r1", Status: chat.QueueRetry, RetryCount: 1, MaxRetries: 3, NextRetryAt: epoch}
	rearmed := listed
	rearmed.RetryCount = 2
	rearmed.NextRetryAt = epoch.Add(5 * time.Second)
	entries.EXPECT().ListDue(epoch).Return([]chat.QueueEntry{listed}, nil)
	messages.EXPECT().GetMessage(message.ID).Return(message, nil)
	entries.EXPECT().GetEntry(message.ID).Return(rearmed, nil)

	// When the sweeper runs
	calls := 0
	attempted, err := queue.RetryDue(ctx, failing(0, &calls))

	// Then the retry is left to its schedule
	req.NoError(err)
	req.Zero(attempted)
	req.Zero(calls)
}
