package chat

import (
	"time"

	"github.com/google/uuid"
)

type QueueStatus string

const (
	QueuePending   QueueStatus = "PENDING"
	QueueDelivered QueueStatus = "DELIVERED"
	QueueFailed    QueueStatus = "FAILED"
	QueueRetry     QueueStatus = "RETRY"
)

const DefaultMaxRetries = 3

// DefaultBackoff is indexed by retryCount-1; the last value is reused.
var DefaultBackoff = []time.Duration{1 * time.Second, 5 * time.Second, 15 * time.Second}

// QueueEntry is the delivery bookkeeping of one message.
type QueueEntry struct {
	MessageID     uuid.UUID
	Room          RoomID
	Status        QueueStatus
	RetryCount    int
	MaxRetries    int
	LastAttemptAt time.Time
	NextRetryAt   time.Time
	LastError     string
	CreatedAt     time.Time
}

// Terminal entries are never attempted again.
func (e QueueEntry) Terminal() bool {
	return e.Status == QueueDelivered || e.Status == QueueFailed
}

// BackoffFor returns the delay before the given retry (1-based).
func BackoffFor(schedule []time.Duration, retryCount int) time.Duration {
	if len(schedule) == 0 {
		return 0
	}
	if retryCount < 1 {
		retryCount = 1
	}
	if retryCount > len(schedule) {
		return schedule[len(schedule)-1]
	}
	return schedule[retryCount-1]
}

// TypingState is ephemeral, one per (room, user).
type TypingState struct {
	Room      RoomID
	UserID    string
	IsTyping  bool
	ExpiresAt time.Time
}

// Active reports whether the state still counts as typing at now.
func (t TypingState) Active(now time.Time) bool {
	return t.IsTyping && t.ExpiresAt.After(now)
}
