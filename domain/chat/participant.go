package chat

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleMember    Role = "member"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// Participant is a user's membership in a room. One per (room, user).
type Participant struct {
	Room       RoomID
	UserID     string
	Role       Role
	JoinedAt   time.Time
	LastReadAt time.Time
}

// ReadReceipt is created on the first read of a message by a user and never
// changes afterwards.
type ReadReceipt struct {
	MessageID uuid.UUID
	Room      RoomID
	UserID    string
	ReadAt    time.Time
}

// MarkedReceipt reports whether marking a message read created its receipt.
type MarkedReceipt struct {
	Receipt ReadReceipt
	Created bool
}
