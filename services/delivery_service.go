//go:generate go run go.uber.org/mock/mockgen -source=delivery_service.go -destination=../mocks/mock_delivery_service.go -package=mocks
package services

import (
	"campus-chat/contract"
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"campus-chat/observability"
	"campus-chat/repositories"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type IDeliveryQueue interface {
	Enqueue(ctx context.Context, message chat.Message) (chat.QueueEntry, error)
	AttemptDelivery(ctx context.Context, message chat.Message, action contract.DeliveryAction) (chat.QueueEntry, error)
	PendingRetries(ctx context.Context, now time.Time) ([]chat.QueueEntry, error)
	RetryDue(ctx context.Context, action contract.DeliveryAction) (int, error)
	Stop()
}

// DeliveryQueue keeps the delivery bookkeeping of every message and retries
// failed fan-outs on a backoff schedule. The bookkeeping never gates what
// users see: an exhausted entry still leaves the message DELIVERED.
type DeliveryQueue struct {
	log        *slog.Logger
	entries    repositories.IQueueRepository
	messages   repositories.IMessageRepository
	scheduler  contract.Scheduler
	maxRetries int
	backoff    []time.Duration

	mu         sync.Mutex
	timers     map[uuid.UUID]contract.Cancel
	inProgress map[uuid.UUID]struct{}
}

func NewDeliveryQueue(log *slog.Logger,
	entries repositories.IQueueRepository,
	messages repositories.IMessageRepository,
	scheduler contract.Scheduler,
	maxRetries int,
	backoff []time.Duration) *DeliveryQueue {
	if maxRetries < 0 {
		maxRetries = chat.DefaultMaxRetries
	}
	if len(backoff) == 0 {
		backoff = chat.DefaultBackoff
	}
	return &DeliveryQueue{
		log:        log,
		entries:    entries,
		messages:   messages,
		scheduler:  scheduler,
		maxRetries: maxRetries,
		backoff:    backoff,
		timers:     make(map[uuid.UUID]contract.Cancel),
		inProgress: make(map[uuid.UUID]struct{}),
	}
}

// Enqueue creates the PENDING entry of a message.
// A second call for the same message fails with ErrDuplicateEntry.
func (q *DeliveryQueue) Enqueue(_ context.Context, message chat.Message) (chat.QueueEntry, error) {
	entry := chat.QueueEntry{
		MessageID:  message.ID,
		Room:       message.Room,
		Status:     chat.QueuePending,
		MaxRetries: q.maxRetries,
		CreatedAt:  q.scheduler.Now(),
	}
	if err := q.entries.CreateEntry(entry); err != nil {
		return chat.QueueEntry{}, err
	}
	return entry, nil
}

// AttemptDelivery runs action once and records the outcome.
// Terminal entries are returned untouched, and an attempt already running
// for the same message makes this call a no-op.
// The returned error only reports bookkeeping failures, never the action's.
func (q *DeliveryQueue) AttemptDelivery(ctx context.Context, message chat.Message, action contract.DeliveryAction) (chat.QueueEntry, error) {
	entry, _, err := q.attempt(ctx, message, action, func(chat.QueueEntry) bool { return true })
	return entry, err
}

// attempt runs action under the message claim when ready accepts the entry
// loaded under that claim, and reports whether it ran.
func (q *DeliveryQueue) attempt(ctx context.Context, message chat.Message, action contract.DeliveryAction, ready func(chat.QueueEntry) bool) (chat.QueueEntry, bool, error) {
	if !q.claim(message.ID) {
		entry, err := q.entries.GetEntry(message.ID)
		return entry, false, err
	}
	defer q.release(message.ID)

	entry, err := q.entries.GetEntry(message.ID)
	if errors.Is(err, errors.ErrEntryNotFound) {
		entry, err = q.Enqueue(ctx, message)
	}
	if err != nil {
		return chat.QueueEntry{}, false, fmt.Errorf("load queue entry: %w", err)
	}
	if entry.Terminal() || !ready(entry) {
		return entry, false, nil
	}
	entry, err = q.run(ctx, message, entry, action)
	return entry, true, err
}

func (q *DeliveryQueue) run(ctx context.Context, message chat.Message, entry chat.QueueEntry, action contract.DeliveryAction) (chat.QueueEntry, error) {
	actionErr := action(ctx, message)
	now := q.scheduler.Now()
	entry.LastAttemptAt = now

	if actionErr == nil {
		entry.Status = chat.QueueDelivered
		entry.LastError = ""
		entry.NextRetryAt = time.Time{}
		if err := q.entries.SaveEntry(entry); err != nil {
			return entry, fmt.Errorf("save delivered entry: %w", err)
		}
		observability.DeliveryAttempts.WithLabelValues("delivered").Inc()
		return entry, q.markDelivered(message.ID)
	}

	entry.LastError = actionErr.Error()
	retryCount := entry.RetryCount + 1
	if retryCount > entry.MaxRetries {
		entry.Status = chat.QueueFailed
		entry.NextRetryAt = time.Time{}
		if err := q.entries.SaveEntry(entry); err != nil {
			return entry, fmt.Errorf("save failed entry: %w", err)
		}
		observability.DeliveryAttempts.WithLabelValues("failed").Inc()
		q.log.Error("Delivery retries exhausted",
			"message", message.ID, "room", message.Room, "retries", entry.RetryCount, "error", actionErr)
		return entry, q.markDelivered(message.ID)
	}

	delay := chat.BackoffFor(q.backoff, retryCount)
	entry.Status = chat.QueueRetry
	entry.RetryCount = retryCount
	entry.NextRetryAt = now.Add(delay)
	if err := q.entries.SaveEntry(entry); err != nil {
		return entry, fmt.Errorf("save retry entry: %w", err)
	}
	observability.DeliveryAttempts.WithLabelValues("retry").Inc()
	q.log.Warn("Delivery failed, retry scheduled",
		"message", message.ID, "room", message.Room, "retry", retryCount, "delay", delay, "error", actionErr)
	q.schedule(message, action, delay)
	return entry, nil
}

// PendingRetries lists RETRY entries whose next attempt time is reached.
func (q *DeliveryQueue) PendingRetries(_ context.Context, now time.Time) ([]chat.QueueEntry, error) {
	return q.entries.ListDue(now)
}

// RetryDue re-attempts due entries that have no live timer in this process,
// which is the case after a restart. It returns how many were attempted.
func (q *DeliveryQueue) RetryDue(ctx context.Context, action contract.DeliveryAction) (int, error) {
	due, err := q.PendingRetries(ctx, q.scheduler.Now())
	if err != nil {
		return 0, err
	}
	attempted := 0
	for _, entry := range due {
		if ctx.Err() != nil {
			return attempted, ctx.Err()
		}
		if q.hasTimer(entry.MessageID) {
			continue
		}
		message, err := q.messages.GetMessage(entry.MessageID)
		if err != nil {
			q.log.Warn("Skipping due entry without message", "message", entry.MessageID, "error", err)
			continue
		}
		_, ran, err := q.attempt(ctx, message, action, q.stillDue)
		if err != nil {
			q.log.Error("Sweeper delivery attempt failed", "message", entry.MessageID, "error", err)
			continue
		}
		if ran {
			attempted++
		}
	}
	return attempted, nil
}

// Stop cancels every scheduled retry. Entries stay in RETRY and are picked
// up by the sweeper of the next process.
func (q *DeliveryQueue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, cancel := range q.timers {
		cancel()
		delete(q.timers, id)
	}
}

func (q *DeliveryQueue) markDelivered(id uuid.UUID) error {
	if _, err := q.messages.UpdateStatus(id, chat.StatusDelivered); err != nil {
		return fmt.Errorf("mark message delivered: %w", err)
	}
	return nil
}

// schedule holds the lock across AfterFunc so the callback, which starts by
// removing its own timer, always observes the registration.
func (q *DeliveryQueue) schedule(message chat.Message, action contract.DeliveryAction, delay time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if cancel, ok := q.timers[message.ID]; ok {
		cancel()
	}
	q.timers[message.ID] = q.scheduler.AfterFunc(delay, func() {
		q.mu.Lock()
		delete(q.timers, message.ID)
		q.mu.Unlock()
		if _, err := q.AttemptDelivery(context.Background(), message, action); err != nil {
			q.log.Error("Scheduled delivery attempt failed", "message", message.ID, "error", err)
		}
	})
}

// stillDue re-checks a swept entry under its claim: a timer callback may have
// attempted it and armed the next retry since the entry was listed.
func (q *DeliveryQueue) stillDue(entry chat.QueueEntry) bool {
	return entry.Status == chat.QueueRetry &&
		!entry.NextRetryAt.After(q.scheduler.Now()) &&
		!q.hasTimer(entry.MessageID)
}

func (q *DeliveryQueue) hasTimer(id uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.timers[id]
	return ok
}

func (q *DeliveryQueue) claim(id uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, busy := q.inProgress[id]; busy {
		return false
	}
	q.inProgress[id] = struct{}{}
	return true
}

func (q *DeliveryQueue) release(id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.inProgress, id)
}
