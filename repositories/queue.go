//go:generate go run go.uber.org/mock/mockgen -source=queue.go -destination=../mocks/mock_queue_repository.go -package=mocks
package repositories

import (
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IQueueRepository interface {
	CreateEntry(entry chat.QueueEntry) error
	GetEntry(messageID uuid.UUID) (chat.QueueEntry, error)
	SaveEntry(entry chat.QueueEntry) error
	ListEntries(status chat.QueueStatus) ([]chat.QueueEntry, error)
	ListDue(now time.Time) ([]chat.QueueEntry, error)
}

type QueueRepository struct {
	db *badger.DB
}

func NewQueueRepository(db *badger.DB) QueueRepository {
	return QueueRepository{db: db}
}

type DiskQueueEntry struct {
	MessageID     uuid.UUID `json:"message_id"`
	Room          string    `json:"room"`
	Status        string    `json:"status"`
	RetryCount    int       `json:"retry_count"`
	MaxRetries    int       `json:"max_retries"`
	LastAttemptAt int64     `json:"last_attempt_at"`
	NextRetryAt   int64     `json:"next_retry_at"`
	LastError     string    `json:"last_error"`
	CreatedAt     int64     `json:"created_at"`
}

const queuePrefix = "queue:"

func queueKey(messageID uuid.UUID) string {
	return queuePrefix + messageID.String()
}

// CreateEntry registers the one and only entry of a message.
func (q QueueRepository) CreateEntry(entry chat.QueueEntry) error {
	key := queueKey(entry.MessageID)
	return insertUnique(q.db, key, errors.ErrDuplicateEntry, func(txn *badger.Txn) error {
		return setJSON(txn, key, fromQueueEntry(entry))
	})
}

func (q QueueRepository) GetEntry(messageID uuid.UUID) (chat.QueueEntry, error) {
	var disk DiskQueueEntry
	err := q.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, queueKey(messageID), &disk, errors.ErrEntryNotFound)
	})
	if err != nil {
		return chat.QueueEntry{}, err
	}
	return toQueueEntry(disk), nil
}

// SaveEntry overwrites an existing entry. Entries are never deleted.
func (q QueueRepository) SaveEntry(entry chat.QueueEntry) error {
	key := queueKey(entry.MessageID)
	return updateWithRetry(q.db, func(txn *badger.Txn) error {
		found, err := exists(txn, key)
		if err != nil {
			return err
		}
		if !found {
			return errors.ErrEntryNotFound
		}
		return setJSON(txn, key, fromQueueEntry(entry))
	})
}

// ListEntries returns every entry, or only those in status when it is not empty.
func (q QueueRepository) ListEntries(status chat.QueueStatus) ([]chat.QueueEntry, error) {
	return q.list(func(e chat.QueueEntry) bool {
		return status == "" || e.Status == status
	})
}

// ListDue returns RETRY entries whose next attempt time has been reached.
// Full scan: the queue is an audit trail sized by traffic, not a hot path.
func (q QueueRepository) ListDue(now time.Time) ([]chat.QueueEntry, error) {
	return q.list(func(e chat.QueueEntry) bool {
		return e.Status == chat.QueueRetry && !e.NextRetryAt.After(now)
	})
}

func (q QueueRepository) list(keep func(chat.QueueEntry) bool) ([]chat.QueueEntry, error) {
	var entries []chat.QueueEntry
	err := q.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, queuePrefix, func(_, val []byte) error {
			var disk DiskQueueEntry
			if err := json.Unmarshal(val, &disk); err != nil {
				return err
			}
			if entry := toQueueEntry(disk); keep(entry) {
				entries = append(entries, entry)
			}
			return nil
		})
	})
	return entries, err
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

func fromQueueEntry(e chat.QueueEntry) DiskQueueEntry {
	return DiskQueueEntry{
		MessageID:     e.MessageID,
		Room:          string(e.Room),
		Status:        string(e.Status),
		RetryCount:    e.RetryCount,
		MaxRetries:    e.MaxRetries,
		LastAttemptAt: unixNano(e.LastAttemptAt),
		NextRetryAt:   unixNano(e.NextRetryAt),
		LastError:     e.LastError,
		CreatedAt:     unixNano(e.CreatedAt),
	}
}

func toQueueEntry(disk DiskQueueEntry) chat.QueueEntry {
	return chat.QueueEntry{
		MessageID:     disk.MessageID,
		Room:          chat.RoomID(disk.Room),
		Status:        chat.QueueStatus(disk.Status),
		RetryCount:    disk.RetryCount,
		MaxRetries:    disk.MaxRetries,
		LastAttemptAt: fromUnixNano(disk.LastAttemptAt),
		NextRetryAt:   fromUnixNano(disk.NextRetryAt),
		LastError:     disk.LastError,
		CreatedAt:     fromUnixNano(disk.CreatedAt),
	}
}
