package runtime

import (
	"campus-chat/contract"
	"campus-chat/domain/chat"
	"campus-chat/domain/event"
	"campus-chat/errors"
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Registry owns the sink of every connection and the room subscriptions.
// Sinks are resolved under the read lock and consumed outside of it, each
// with its own timeout, so a slow connection never blocks a room.
type Registry struct {
	mu          sync.RWMutex
	log         *slog.Logger
	sinkTimeout time.Duration
	closed      bool
	sessions    map[string]contract.EventSink       // connection -> sink
	roomMembers map[chat.RoomID]Set                 // room -> connections
	memberships map[string]map[chat.RoomID]struct{} // connection -> rooms
}

func NewRegistry(log *slog.Logger, sinkTimeout time.Duration) *Registry {
	return &Registry{
		log:         log,
		sinkTimeout: sinkTimeout,
		sessions:    make(map[string]contract.EventSink),
		roomMembers: make(map[chat.RoomID]Set),
		memberships: make(map[string]map[chat.RoomID]struct{}),
	}
}

// Attach registers the outbound sink of a connection.
func (r *Registry) Attach(connectionID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[connectionID] = sink
	if _, ok := r.memberships[connectionID]; !ok {
		r.memberships[connectionID] = make(map[chat.RoomID]struct{})
	}
}

// Detach forgets a connection and returns the rooms it was subscribed to, sorted.
// Empty rooms are removed so the maps do not grow with dead entries.
func (r *Registry) Detach(connectionID string) []chat.RoomID {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, connectionID)
	rooms := make([]chat.RoomID, 0, len(r.memberships[connectionID]))
	for room := range r.memberships[connectionID] {
		rooms = append(rooms, room)
		r.removeMember(room, connectionID)
	}
	delete(r.memberships, connectionID)
	sort.Slice(rooms, func(i, j int) bool { return rooms[i] < rooms[j] })
	return rooms
}

// Subscribe adds an attached connection to a room's fan-out group.
func (r *Registry) Subscribe(connectionID string, room chat.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[connectionID]; !ok {
		return
	}
	if _, ok := r.roomMembers[room]; !ok {
		r.roomMembers[room] = make(Set)
	}
	r.roomMembers[room][connectionID] = struct{}{}
	r.memberships[connectionID][room] = struct{}{}
}

func (r *Registry) Unsubscribe(connectionID string, room chat.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeMember(room, connectionID)
	if rooms, ok := r.memberships[connectionID]; ok {
		delete(rooms, room)
	}
}

func (r *Registry) IsSubscribed(connectionID string, room chat.RoomID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.roomMembers[room][connectionID]
	return ok
}

// Emit delivers e to every connection of room except e.Except.
// Sink failures are logged and skipped; only a closed registry is an error.
func (r *Registry) Emit(ctx context.Context, room chat.RoomID, e event.Event) error {
	e.Room = room
	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return errors.ErrBroadcasterClosed
	}
	sinks := make(map[string]contract.EventSink, len(r.roomMembers[room]))
	for connectionID := range r.roomMembers[room] {
		if connectionID == e.Except {
			continue
		}
		if sink, ok := r.sessions[connectionID]; ok {
			sinks[connectionID] = sink
		}
	}
	r.mu.RUnlock()

	r.consumeAll(ctx, sinks, e)
	return nil
}

// EmitAll delivers e to every attached connection.
func (r *Registry) EmitAll(ctx context.Context, e event.Event) error {
	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return errors.ErrBroadcasterClosed
	}
	sinks := make(map[string]contract.EventSink, len(r.sessions))
	for connectionID, sink := range r.sessions {
		if connectionID != e.Except {
			sinks[connectionID] = sink
		}
	}
	r.mu.RUnlock()

	r.consumeAll(ctx, sinks, e)
	return nil
}

// Send delivers e to a single connection.
func (r *Registry) Send(ctx context.Context, connectionID string, e event.Event) error {
	r.mu.RLock()
	sink, ok := r.sessions[connectionID]
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return errors.ErrBroadcasterClosed
	}
	if !ok {
		return errors.ErrUnknownConnection
	}
	return r.consume(ctx, sink, e)
}

// Close makes every further emission fail. Attached sinks are left to their owners.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

func (r *Registry) consumeAll(ctx context.Context, sinks map[string]contract.EventSink, e event.Event) {
	for connectionID, sink := range sinks {
		if err := r.consume(ctx, sink, e); err != nil {
			r.log.Warn("Event not consumed", "connection", connectionID, "event", e.Type, "error", err)
		}
	}
}

func (r *Registry) consume(ctx context.Context, sink contract.EventSink, e event.Event) error {
	if r.sinkTimeout <= 0 {
		return sink.Consume(ctx, e)
	}
	sinkCtx, cancel := context.WithTimeout(ctx, r.sinkTimeout)
	defer cancel()
	return sink.Consume(sinkCtx, e)
}

func (r *Registry) removeMember(room chat.RoomID, connectionID string) {
	members, ok := r.roomMembers[room]
	if !ok {
		return
	}
	delete(members, connectionID)
	if len(members) == 0 {
		delete(r.roomMembers, room)
	}
}
