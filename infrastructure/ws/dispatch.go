//go:generate go run go.uber.org/mock/mockgen -source=dispatch.go -destination=../../mocks/mock_session_coordinator.go -package=mocks
package ws

import (
	"campus-chat/contract"
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"context"
	"encoding/json"
	"fmt"
)

// SessionCoordinator is what the transport drives for each connection.
type SessionCoordinator interface {
	Connect(ctx context.Context, connectionID, userID string, room chat.RoomID, sink contract.EventSink) error
	Reconnect(ctx context.Context, connectionID string) error
	Disconnect(ctx context.Context, connectionID string)
	JoinRoom(ctx context.Context, connectionID string, cmd chat.JoinRoomCommand) error
	LeaveRoom(ctx context.Context, connectionID string, cmd chat.LeaveRoomCommand) error
	SendMessage(ctx context.Context, connectionID string, cmd chat.SendMessageCommand) error
	TypingStart(ctx context.Context, connectionID string, cmd chat.TypingCommand)
	TypingStop(ctx context.Context, connectionID string, cmd chat.TypingCommand)
	MarkRead(ctx context.Context, connectionID string, cmd chat.MarkReadCommand) error
	MarkMultipleRead(ctx context.Context, connectionID string, cmd chat.MarkMultipleReadCommand) error
	GetMessages(ctx context.Context, connectionID string, cmd chat.GetMessagesCommand) error
	GetOnlineUsers(ctx context.Context, connectionID string, cmd chat.RoomQueryCommand) error
	GetUnreadCount(ctx context.Context, connectionID string, cmd chat.RoomQueryCommand) error
	Fail(ctx context.Context, connectionID, operation string, err error)
}

// Inbound event names.
const (
	JoinRoomEvent         = "join_room"
	LeaveRoomEvent        = "leave_room"
	SendMessageEvent      = "send_message"
	TypingStartEvent      = "typing_start"
	TypingStopEvent       = "typing_stop"
	MarkReadEvent         = "mark_read"
	MarkMultipleReadEvent = "mark_multiple_read"
	GetMessagesEvent      = "get_messages"
	GetOnlineUsersEvent   = "get_online_users"
	GetUnreadCountEvent   = "get_unread_count"
	ReconnectEvent        = "reconnect"
)

type operation func(ctx context.Context, c SessionCoordinator, connectionID string, data json.RawMessage) error

// command decodes the payload into C before handing it to fn. A payload that
// does not decode is reported to the connection like any rejected operation.
func command[C any](name string, fn func(SessionCoordinator, context.Context, string, C) error) operation {
	return func(ctx context.Context, c SessionCoordinator, connectionID string, data json.RawMessage) error {
		var cmd C
		if err := decodeData(data, &cmd); err != nil {
			c.Fail(ctx, connectionID, name, err)
			return err
		}
		return fn(c, ctx, connectionID, cmd)
	}
}

func bestEffort[C any](fn func(SessionCoordinator, context.Context, string, C)) operation {
	return func(ctx context.Context, c SessionCoordinator, connectionID string, data json.RawMessage) error {
		var cmd C
		if err := decodeData(data, &cmd); err != nil {
			return nil
		}
		fn(c, ctx, connectionID, cmd)
		return nil
	}
}

var operations = map[string]operation{
	JoinRoomEvent:         command(JoinRoomEvent, SessionCoordinator.JoinRoom),
	LeaveRoomEvent:        command(LeaveRoomEvent, SessionCoordinator.LeaveRoom),
	SendMessageEvent:      command(SendMessageEvent, SessionCoordinator.SendMessage),
	TypingStartEvent:      bestEffort(SessionCoordinator.TypingStart),
	TypingStopEvent:       bestEffort(SessionCoordinator.TypingStop),
	MarkReadEvent:         command(MarkReadEvent, SessionCoordinator.MarkRead),
	MarkMultipleReadEvent: command(MarkMultipleReadEvent, SessionCoordinator.MarkMultipleRead),
	GetMessagesEvent:      command(GetMessagesEvent, SessionCoordinator.GetMessages),
	GetOnlineUsersEvent:   command(GetOnlineUsersEvent, SessionCoordinator.GetOnlineUsers),
	GetUnreadCountEvent:   command(GetUnreadCountEvent, SessionCoordinator.GetUnreadCount),
	ReconnectEvent: func(ctx context.Context, c SessionCoordinator, connectionID string, _ json.RawMessage) error {
		return c.Reconnect(ctx, connectionID)
	},
}

// Dispatch routes one decoded frame to the coordinator.
func Dispatch(ctx context.Context, c SessionCoordinator, connectionID string, envelope Envelope) error {
	op, ok := operations[envelope.Event]
	if !ok {
		err := fmt.Errorf("%w: %s", errors.ErrUnknownEvent, envelope.Event)
		c.Fail(ctx, connectionID, "dispatch", err)
		return err
	}
	return op(ctx, c, connectionID, envelope.Data)
}
