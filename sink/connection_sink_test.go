package sink

import (
	"campus-chat/domain/event"
	"campus-chat/errors"
	"context"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestConnectionSink_DropsWhenFull(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := NewConnectionSink(logs.GetLoggerFromLevel(slog.LevelDebug), "c1", 1)

	req.NoError(s.Consume(ctx, event.New(event.UserJoinedType, "r1", nil)))
	req.NoError(s.Consume(ctx, event.New(event.UserLeftType, "r1", nil)))

	first := <-s.Events()
	req.Equal(event.UserJoinedType, first.Type)
	req.Empty(s.Events())
}

func TestConnectionSink_ClosedRejectsEvents(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(logs.GetLoggerFromLevel(slog.LevelDebug), "c1", 4)

	s.Close()
	s.Close()

	_, open := <-s.Events()
	req.False(open)
	req.ErrorIs(s.Consume(context.Background(), event.New(event.UserJoinedType, "r1", nil)), errors.ErrBroadcasterClosed)
}
