package sink

import (
	"campus-chat/domain/event"
	"campus-chat/errors"
	"campus-chat/observability"
	"context"
	"log/slog"
	"sync"
)

// ConnectionSink buffers the outbound events of one connection.
// The transport drains Events and writes them to the socket.
type ConnectionSink struct {
	log          *slog.Logger
	connectionID string
	events       chan event.Event

	mu     sync.RWMutex
	closed bool
}

func NewConnectionSink(log *slog.Logger, connectionID string, bufferSize int) *ConnectionSink {
	return &ConnectionSink{
		log:          log,
		connectionID: connectionID,
		events:       make(chan event.Event, bufferSize),
	}
}

// Consume never blocks: when the buffer is full the event is dropped.
func (s *ConnectionSink) Consume(ctx context.Context, e event.Event) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return errors.ErrBroadcasterClosed
	}
	select {
	case s.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		observability.DroppedEvents.Inc()
		s.log.Warn("Connection buffer full, event dropped", "connection", s.connectionID, "event", e.Type)
		return nil
	}
}

func (s *ConnectionSink) Events() <-chan event.Event {
	return s.events
}

// Close ends Events. Later calls to Consume fail.
func (s *ConnectionSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}
