//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"campus-chat/domain/chat"
	"campus-chat/domain/event"
	"context"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is the outbound side of one connection.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

// RoomBroadcaster delivers an event to every connection subscribed to a room.
type RoomBroadcaster interface {
	Emit(ctx context.Context, room chat.RoomID, e event.Event) error
}

// IRegistry owns connection sinks and room subscriptions.
type IRegistry interface {
	RoomBroadcaster
	Attach(connectionID string, sink EventSink)
	Detach(connectionID string) []chat.RoomID
	Subscribe(connectionID string, room chat.RoomID)
	Unsubscribe(connectionID string, room chat.RoomID)
	IsSubscribed(connectionID string, room chat.RoomID) bool
	Send(ctx context.Context, connectionID string, e event.Event) error
	EmitAll(ctx context.Context, e event.Event) error
}

// DeliveryAction is the fan-out side effect of a message.
type DeliveryAction func(ctx context.Context, message chat.Message) error

// Cancel stops a scheduled call. It reports whether the call was prevented.
type Cancel func() bool

// Scheduler abstracts wall time so timers can run on virtual time in tests.
type Scheduler interface {
	Now() time.Time
	AfterFunc(delay time.Duration, fn func()) Cancel
}
