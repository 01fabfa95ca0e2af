//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IMessageRepository interface {
	StoreMessage(message chat.Message) error
	GetMessage(id uuid.UUID) (chat.Message, error)
	GetByIdempotencyKey(key string) (chat.Message, error)
	GetMessages(room chat.RoomID, limit, skip int) ([]chat.Message, error)
	UpdateStatus(id uuid.UUID, status chat.MessageStatus) (bool, error)
	CountUnread(room chat.RoomID, userID string, after time.Time) (int, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

type DiskAttachment struct {
	URL          string `json:"url"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type DiskReply struct {
	MessageID  uuid.UUID `json:"message_id"`
	SenderName string    `json:"sender_name"`
	Snippet    string    `json:"snippet"`
}

type DiskMessage struct {
	ID               uuid.UUID       `json:"id"`
	Room             string          `json:"room"`
	Author           string          `json:"author"`
	Content          string          `json:"content"`
	LogicalTimestamp int64           `json:"logical_timestamp"`
	IdempotencyKey   string          `json:"idempotency_key"`
	Status           string          `json:"status"`
	Type             string          `json:"type"`
	Attachment       *DiskAttachment `json:"attachment,omitempty"`
	Reply            *DiskReply      `json:"reply,omitempty"`
	At               int64           `json:"at"`
}

func messageKey(id uuid.UUID) string {
	return "msg:" + id.String()
}

func idempotencyKey(key string) string {
	return "idem:" + key
}

func roomIndexPrefix(room chat.RoomID) string {
	return fmt.Sprintf("msgidx:%s:", segment(string(room)))
}

// roomIndexKey orders a room's messages by (logical timestamp, creation time).
// Both numbers are zero padded to 19 digits so lexicographical order equals
// numeric order; the uuid keeps two identical pairs from colliding.
func roomIndexKey(m chat.Message) string {
	return fmt.Sprintf("%s%019d:%019d:%s",
		roomIndexPrefix(m.Room),
		m.LogicalTimestamp,
		m.CreatedAt.UnixNano(),
		m.ID,
	)
}

// StoreMessage persists a message together with its idempotency and ordering
// indexes in one transaction. A reused idempotency key yields
// ErrDuplicateIdempotencyKey, including when two stores race on the same key.
func (m MessageRepository) StoreMessage(message chat.Message) error {
	return insertUnique(m.db, idempotencyKey(message.IdempotencyKey), errors.ErrDuplicateIdempotencyKey,
		func(txn *badger.Txn) error {
			if err := setJSON(txn, messageKey(message.ID), fromMessage(message)); err != nil {
				return err
			}
			if err := txn.Set([]byte(idempotencyKey(message.IdempotencyKey)), []byte(message.ID.String())); err != nil {
				return err
			}
			return txn.Set([]byte(roomIndexKey(message)), []byte(message.ID.String()))
		})
}

func (m MessageRepository) GetMessage(id uuid.UUID) (chat.Message, error) {
	var disk DiskMessage
	err := m.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, messageKey(id), &disk, errors.ErrMessageNotFound)
	})
	if err != nil {
		return chat.Message{}, err
	}
	return toMessage(disk), nil
}

func (m MessageRepository) GetByIdempotencyKey(key string) (chat.Message, error) {
	var disk DiskMessage
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(idempotencyKey(key)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrMessageNotFound
		}
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		id, err := uuid.ParseBytes(raw)
		if err != nil {
			return err
		}
		return getJSON(txn, messageKey(id), &disk, errors.ErrMessageNotFound)
	})
	if err != nil {
		return chat.Message{}, err
	}
	return toMessage(disk), nil
}

// GetMessages walks the room index in ascending (logical timestamp, creation
// time) order, skipping the first skip entries and returning at most limit.
func (m MessageRepository) GetMessages(room chat.RoomID, limit, skip int) ([]chat.Message, error) {
	var messages []chat.Message
	err := m.db.View(func(txn *badger.Txn) error {
		seen := 0
		var ids []uuid.UUID
		err := scanPrefix(txn, roomIndexPrefix(room), func(_, val []byte) error {
			if len(ids) == limit {
				return errStopScan
			}
			seen++
			if seen <= skip {
				return nil
			}
			id, err := uuid.ParseBytes(val)
			if err != nil {
				return err
			}
			ids = append(ids, id)
			return nil
		})
		if err != nil && !errors.Is(err, errStopScan) {
			return err
		}
		for _, id := range ids {
			var disk DiskMessage
			if err := getJSON(txn, messageKey(id), &disk, errors.ErrMessageNotFound); err != nil {
				return err
			}
			messages = append(messages, toMessage(disk))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(messages) == limit {
		m.log.Debug(fmt.Sprintf("Maximum of %d message reached", limit), "room", room)
	}
	return messages, nil
}

// UpdateStatus applies a forward-only status transition.
// It reports false, without error, when the stored status is already at or past status.
func (m MessageRepository) UpdateStatus(id uuid.UUID, status chat.MessageStatus) (bool, error) {
	var applied bool
	err := updateWithRetry(m.db, func(txn *badger.Txn) error {
		applied = false
		var disk DiskMessage
		if err := getJSON(txn, messageKey(id), &disk, errors.ErrMessageNotFound); err != nil {
			return err
		}
		if !chat.MessageStatus(disk.Status).Advances(status) {
			return nil
		}
		disk.Status = string(status)
		applied = true
		return setJSON(txn, messageKey(id), disk)
	})
	return applied, err
}

// CountUnread counts messages in room written by someone other than userID
// and created strictly after the given instant.
func (m MessageRepository) CountUnread(room chat.RoomID, userID string, after time.Time) (int, error) {
	count := 0
	err := m.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, roomIndexPrefix(room), func(_, val []byte) error {
			id, err := uuid.ParseBytes(val)
			if err != nil {
				return err
			}
			var disk DiskMessage
			if err := getJSON(txn, messageKey(id), &disk, errors.ErrMessageNotFound); err != nil {
				return err
			}
			if disk.Author != userID && disk.At > after.UnixNano() {
				count++
			}
			return nil
		})
	})
	return count, err
}

var errStopScan = fmt.Errorf("stop scan")

func fromMessage(message chat.Message) DiskMessage {
	disk := DiskMessage{
		ID:               message.ID,
		Room:             string(message.Room),
		Author:           message.SenderID,
		Content:          message.Content,
		LogicalTimestamp: message.LogicalTimestamp,
		IdempotencyKey:   message.IdempotencyKey,
		Status:           string(message.Status),
		Type:             string(message.Type),
		At:               message.CreatedAt.UnixNano(),
	}
	if a := message.Attachment; a != nil {
		disk.Attachment = lo.ToPtr(DiskAttachment(*a))
	}
	if r := message.ReplyTo; r != nil {
		disk.Reply = lo.ToPtr(DiskReply(*r))
	}
	return disk
}

func toMessage(disk DiskMessage) chat.Message {
	message := chat.Message{
		ID:               disk.ID,
		Room:             chat.RoomID(disk.Room),
		SenderID:         disk.Author,
		Content:          disk.Content,
		LogicalTimestamp: disk.LogicalTimestamp,
		IdempotencyKey:   disk.IdempotencyKey,
		Status:           chat.MessageStatus(disk.Status),
		Type:             chat.MessageType(disk.Type),
		CreatedAt:        time.Unix(0, disk.At).UTC(),
	}
	if a := disk.Attachment; a != nil {
		message.Attachment = lo.ToPtr(chat.Attachment(*a))
	}
	if r := disk.Reply; r != nil {
		message.ReplyTo = lo.ToPtr(chat.ReplyRef(*r))
	}
	return message
}
