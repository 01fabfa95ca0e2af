package runtime

import (
	"campus-chat/domain/chat"
	"campus-chat/domain/event"
	"campus-chat/errors"
	"campus-chat/mocks"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRegistry() *Registry {
	return NewRegistry(logs.GetLoggerFromLevel(slog.LevelDebug), time.Second)
}

func TestRegistry_Emit_Reaches_Room_Subscribers_Only(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	registry := newRegistry()
	alice, bob, carol := &RecordingSink{}, &RecordingSink{}, &RecordingSink{}

	// Given three connections, two of them in room r1
	registry.Attach("c1", alice)
	registry.Attach("c2", bob)
	registry.Attach("c3", carol)
	registry.Subscribe("c1", "r1")
	registry.Subscribe("c2", "r1")
	registry.Subscribe("c3", "r2")

	// When an event is emitted to r1 except c1
	e := event.New(event.UserJoinedType, "r1", nil).ExceptConnection("c1")
	req.NoError(registry.Emit(ctx, "r1", e))

	// Then only c2 receives it
	req.Empty(alice.Types())
	req.Equal([]event.Type{event.UserJoinedType}, bob.Types())
	req.Empty(carol.Types())
}

func TestRegistry_Detach_Returns_Rooms_And_Cleans_Up(t *testing.T) {
	req := require.New(t)
	registry := newRegistry()
	registry.Attach("c1", &RecordingSink{})
	registry.Subscribe("c1", "r2")
	registry.Subscribe("c1", "r1")

	req.True(registry.IsSubscribed("c1", "r1"))
	req.Equal([]chat.RoomID{"r1", "r2"}, registry.Detach("c1"))
	req.False(registry.IsSubscribed("c1", "r1"))
	req.Empty(registry.roomMembers)
	req.Empty(registry.sessions)

	// Subscribing an unknown connection is ignored
	registry.Subscribe("ghost", "r1")
	req.False(registry.IsSubscribed("ghost", "r1"))
}

func TestRegistry_Unsubscribe_Keeps_Other_Rooms(t *testing.T) {
	req := require.New(t)
	registry := newRegistry()
	registry.Attach("c1", &RecordingSink{})
	registry.Subscribe("c1", "r1")
	registry.Subscribe("c1", "r2")

	registry.Unsubscribe("c1", "r1")

	req.False(registry.IsSubscribed("c1", "r1"))
	req.True(registry.IsSubscribed("c1", "r2"))
	req.Equal([]chat.RoomID{"r2"}, registry.Detach("c1"))
}

func TestRegistry_Failing_Sink_Does_Not_Stop_Fanout(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registry := newRegistry()
	failing := mocks.NewMockEventSink(ctrl)
	healthy := &RecordingSink{}

	registry.Attach("c1", failing)
	registry.Attach("c2", healthy)
	registry.Subscribe("c1", "r1")
	registry.Subscribe("c2", "r1")

	// Given a sink that times out
	failing.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded).Times(1)

	req.NoError(registry.Emit(context.Background(), "r1", event.New(event.NewMessageType, "r1", nil)))
	req.Equal([]event.Type{event.NewMessageType}, healthy.Types())
}

func TestRegistry_Send_And_Close(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	registry := newRegistry()
	sink := &RecordingSink{}
	registry.Attach("c1", sink)

	req.NoError(registry.Send(ctx, "c1", event.New(event.ConnectedType, "", nil)))
	req.ErrorIs(registry.Send(ctx, "c2", event.New(event.ConnectedType, "", nil)), errors.ErrUnknownConnection)
	req.NoError(registry.EmitAll(ctx, event.New(event.PresenceUpdateType, "", nil)))
	req.Equal([]event.Type{event.ConnectedType, event.PresenceUpdateType}, sink.Types())

	registry.Close()
	req.ErrorIs(registry.Emit(ctx, "r1", event.New(event.UserLeftType, "r1", nil)), errors.ErrBroadcasterClosed)
	req.ErrorIs(registry.EmitAll(ctx, event.New(event.PresenceUpdateType, "", nil)), errors.ErrBroadcasterClosed)
}
