// Package chat contains core concepts of the real-time messaging core.
// Messages are immutable once created, except for their status which only
// ever moves forward.
package chat

import (
	"time"

	"github.com/google/uuid"
)

type MessageStatus string

const (
	StatusPending   MessageStatus = "PENDING"
	StatusDelivered MessageStatus = "DELIVERED"
	StatusRead      MessageStatus = "READ"
)

func (s MessageStatus) rank() int {
	switch s {
	case StatusPending:
		return 1
	case StatusDelivered:
		return 2
	case StatusRead:
		return 3
	default:
		return 0
	}
}

// Advances reports whether moving from s to next is a forward transition.
func (s MessageStatus) Advances(next MessageStatus) bool {
	return next.rank() > s.rank()
}

type MessageType string

const (
	TypeText   MessageType = "text"
	TypeImage  MessageType = "image"
	TypeFile   MessageType = "file"
	TypeSystem MessageType = "system"
)

const DeletedReplySnippet = "Original message deleted"

// Attachment is optional file metadata carried by a message.
type Attachment struct {
	URL          string
	Name         string
	Size         int64
	MimeType     string
	ThumbnailURL string
}

// ReplyRef is captured at write time so it survives the target's deletion.
type ReplyRef struct {
	MessageID  uuid.UUID
	SenderName string
	Snippet    string
}

// Message represents an immutable chat message.
type Message struct {
	ID               uuid.UUID
	Room             RoomID
	SenderID         string
	Content          string
	LogicalTimestamp int64
	IdempotencyKey   string
	Status           MessageStatus
	Type             MessageType
	Attachment       *Attachment
	ReplyTo          *ReplyRef
	CreatedAt        time.Time
}

// Snippet returns at most n runes of the content.
func (m Message) Snippet(n int) string {
	r := []rune(m.Content)
	if len(r) <= n {
		return m.Content
	}
	return string(r[:n])
}
