package chat

import (
	"campus-chat/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

type JoinRoomCommand struct {
	Room   RoomID `json:"roomId" validate:"required"`
	UserID string `json:"userId"`
}

type LeaveRoomCommand struct {
	Room RoomID `json:"roomId" validate:"required"`
}

type SendMessageCommand struct {
	Room             RoomID      `json:"roomId" validate:"required"`
	Content          string      `json:"content" validate:"required_without=FileURL"`
	LogicalTimestamp int64       `json:"lamportTimestamp" validate:"required,min=1"`
	IdempotencyKey   string      `json:"idempotencyKey" validate:"required,max=128"`
	ReplyTo          string      `json:"replyTo" validate:"omitempty,uuid"`
	ReplySnippet     string      `json:"replySnippet"`
	Type             MessageType `json:"messageType" validate:"omitempty,oneof=text image file system"`
	FileURL          string      `json:"fileUrl" validate:"omitempty,url"`
	FileName         string      `json:"fileName"`
	FileSize         int64       `json:"fileSize" validate:"min=0"`
	MimeType         string      `json:"mimeType"`
	ThumbnailURL     string      `json:"thumbnailUrl" validate:"omitempty,url"`
}

// Attachment returns the attachment metadata, nil when no file is attached.
func (c SendMessageCommand) Attachment() *Attachment {
	if c.FileURL == "" {
		return nil
	}
	return &Attachment{
		URL:          c.FileURL,
		Name:         c.FileName,
		Size:         c.FileSize,
		MimeType:     c.MimeType,
		ThumbnailURL: c.ThumbnailURL,
	}
}

func (c SendMessageCommand) MessageType() MessageType {
	if c.Type == "" {
		return TypeText
	}
	return c.Type
}

type TypingCommand struct {
	Room RoomID `json:"roomId" validate:"required"`
}

type MarkReadCommand struct {
	MessageID string `json:"messageId" validate:"required,uuid"`
	Room      RoomID `json:"roomId" validate:"required"`
}

type MarkMultipleReadCommand struct {
	MessageIDs []string `json:"messageIds" validate:"required,min=1,max=500,dive,uuid"`
	Room       RoomID   `json:"roomId" validate:"required"`
}

type GetMessagesCommand struct {
	Room  RoomID `json:"roomId" validate:"required"`
	Limit int    `json:"limit" validate:"min=0,max=500"`
	Skip  int    `json:"skip" validate:"min=0"`
}

// PageLimit applies the default page size when none was given.
func (c GetMessagesCommand) PageLimit() int {
	if c.Limit == 0 {
		return DefaultHistoryLimit
	}
	return c.Limit
}

type RoomQueryCommand struct {
	Room RoomID `json:"roomId" validate:"required"`
}

// Validate checks the struct tags of any command.
func Validate(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return errors.Validation(err)
	}
	return nil
}
