package event

import (
	"campus-chat/domain/chat"
	"time"

	"github.com/google/uuid"
)

type Type string

// Room broadcasts.
const (
	UserJoinedType  Type = "user_joined"
	UserLeftType    Type = "user_left"
	NewMessageType  Type = "new_message"
	UserTypingType  Type = "user_typing"
	ReadReceiptType Type = "read_receipt"
)

// Replies to the originating connection only.
const (
	ConnectedType   Type = "connected"
	ReconnectedType Type = "reconnected"
	JoinedRoomType  Type = "joined_room"
	LeftRoomType    Type = "left_room"
	MessageSentType Type = "message_sent"
	MessagesType    Type = "messages"
	OnlineUsersType Type = "online_users"
	MarkedReadType  Type = "marked_read"
	UnreadCountType Type = "unread_count"
	ErrorType       Type = "error"
)

// Sent to every connection.
const PresenceUpdateType Type = "user_presence_update"

// Event is what flows from the coordinator to sinks.
// Except names a connection that must not receive a room broadcast.
type Event struct {
	Type    Type
	Room    chat.RoomID
	Except  string
	Payload any
}

func New(t Type, room chat.RoomID, payload any) Event {
	return Event{Type: t, Room: room, Payload: payload}
}

// ExceptConnection returns a copy of e that skips the given connection.
func (e Event) ExceptConnection(connectionID string) Event {
	e.Except = connectionID
	return e
}

type UserJoined struct {
	Room      chat.RoomID `json:"roomId"`
	UserID    string      `json:"userId"`
	Timestamp time.Time   `json:"timestamp"`
}

type UserLeft struct {
	Room      chat.RoomID `json:"roomId"`
	UserID    string      `json:"userId"`
	Timestamp time.Time   `json:"timestamp"`
}

type Reply struct {
	MessageID   uuid.UUID `json:"messageId"`
	SenderName  string    `json:"senderName,omitempty"`
	PreviewText string    `json:"previewText,omitempty"`
}

type NewMessage struct {
	MessageID        uuid.UUID          `json:"messageId"`
	Room             chat.RoomID        `json:"roomId"`
	SenderID         string             `json:"senderId"`
	SenderName       string             `json:"senderName"`
	Content          string             `json:"content"`
	LogicalTimestamp int64              `json:"lamportTimestamp"`
	CreatedAt        time.Time          `json:"createdAt"`
	Status           chat.MessageStatus `json:"status"`
	MessageType      chat.MessageType   `json:"messageType"`
	FileURL          string             `json:"fileUrl,omitempty"`
	FileName         string             `json:"fileName,omitempty"`
	FileSize         int64              `json:"fileSize,omitempty"`
	MimeType         string             `json:"mimeType,omitempty"`
	ThumbnailURL     string             `json:"thumbnailUrl,omitempty"`
	ReplyTo          *Reply             `json:"replyTo"`
}

// FromMessage builds the wire view of a stored message.
func FromMessage(m chat.Message, senderName string) NewMessage {
	out := NewMessage{
		MessageID:        m.ID,
		Room:             m.Room,
		SenderID:         m.SenderID,
		SenderName:       senderName,
		Content:          m.Content,
		LogicalTimestamp: m.LogicalTimestamp,
		CreatedAt:        m.CreatedAt,
		Status:           m.Status,
		MessageType:      m.Type,
	}
	if a := m.Attachment; a != nil {
		out.FileURL = a.URL
		out.FileName = a.Name
		out.FileSize = a.Size
		out.MimeType = a.MimeType
		out.ThumbnailURL = a.ThumbnailURL
	}
	if r := m.ReplyTo; r != nil {
		out.ReplyTo = &Reply{
			MessageID:   r.MessageID,
			SenderName:  r.SenderName,
			PreviewText: r.Snippet,
		}
	}
	return out
}

type UserTyping struct {
	Room     chat.RoomID `json:"roomId"`
	UserID   string      `json:"userId"`
	IsTyping bool        `json:"isTyping"`
}

type ReadReceipt struct {
	MessageID uuid.UUID   `json:"messageId"`
	Room      chat.RoomID `json:"roomId"`
	UserID    string      `json:"userId"`
	ReadAt    time.Time   `json:"readAt"`
}

type Connected struct {
	ConnectionID string `json:"socketId"`
	UserID       string `json:"userId"`
	Message      string `json:"message"`
}

type JoinedRoom struct {
	Room    chat.RoomID `json:"roomId"`
	Message string      `json:"message"`
}

type LeftRoom struct {
	Room chat.RoomID `json:"roomId"`
}

type SendStatus string

const (
	SendStatusSent      SendStatus = "sent"
	SendStatusDuplicate SendStatus = "duplicate"
)

type MessageSent struct {
	MessageID      uuid.UUID  `json:"messageId"`
	IdempotencyKey string     `json:"idempotencyKey"`
	Status         SendStatus `json:"status"`
}

type Messages struct {
	Room     chat.RoomID  `json:"roomId"`
	Messages []NewMessage `json:"messages"`
	Count    int          `json:"count"`
}

type OnlineUsers struct {
	Room  chat.RoomID `json:"roomId"`
	Users []string    `json:"onlineUsers"`
	Count int         `json:"count"`
}

type MarkedRead struct {
	MessageID uuid.UUID `json:"messageId"`
	Status    string    `json:"status"`
}

type UnreadCount struct {
	Room  chat.RoomID `json:"roomId"`
	Count int         `json:"count"`
}

type Error struct {
	Message string `json:"message"`
}

type PresenceUpdate struct {
	UserID   string    `json:"userId"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}
