// Package ws carries client sessions over WebSocket: one JSON envelope per
// frame, a read loop dispatching to the coordinator and a write loop draining
// the connection sink.
package ws

import (
	"campus-chat/domain/chat"
	"campus-chat/domain/event"
	"campus-chat/errors"
	"campus-chat/sink"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// TokenValidator resolves a session token to a user id.
type TokenValidator interface {
	Validate(token string) (string, error)
}

type Options struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
	BufferSize     int
	// AllowQueryIdentity accepts a bare userId query parameter when no token
	// is presented. Meant for local runs.
	AllowQueryIdentity bool
}

type Handler struct {
	log         *slog.Logger
	coordinator SessionCoordinator
	tokens      TokenValidator
	options     Options
	upgrader    websocket.Upgrader

	mu     sync.Mutex
	closed bool
	conns  map[*websocket.Conn]struct{}
	active sync.WaitGroup
}

func NewHandler(log *slog.Logger, coordinator SessionCoordinator, tokens TokenValidator, options Options) *Handler {
	if options.WriteWait <= 0 {
		options.WriteWait = 10 * time.Second
	}
	if options.PongWait <= 0 {
		options.PongWait = 60 * time.Second
	}
	if options.MaxMessageSize <= 0 {
		options.MaxMessageSize = 64 * 1024
	}
	if options.BufferSize <= 0 {
		options.BufferSize = 64
	}
	return &Handler{
		log:         log,
		coordinator: coordinator,
		tokens:      tokens,
		options:     options,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identify(r)
	if err != nil {
		h.log.Debug("Connection refused", "remote", r.RemoteAddr, "error", err)
		http.Error(w, errors.PublicMessage(err), http.StatusUnauthorized)
		return
	}

	if !h.enter() {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}
	defer h.active.Done()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("Upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer func() { _ = conn.Close() }()
	if !h.track(conn) {
		return
	}
	defer h.untrack(conn)

	// The session outlives the request context once the connection is hijacked.
	ctx := context.WithoutCancel(r.Context())
	connectionID := uuid.NewString()
	connectionSink := sink.NewConnectionSink(h.log, connectionID, h.options.BufferSize)
	room := chat.RoomID(r.URL.Query().Get("roomId"))

	if err := h.coordinator.Connect(ctx, connectionID, userID, room, connectionSink); err != nil {
		h.log.Debug("Connection rejected", "connection", connectionID, "error", err)
		h.coordinator.Disconnect(ctx, connectionID)
		h.reject(conn, err)
		return
	}
	h.log.Info("Connection opened", "connection", connectionID, "user", userID)

	written := make(chan struct{})
	go func() {
		defer close(written)
		h.writeLoop(conn, connectionSink)
	}()

	h.readLoop(ctx, conn, connectionID)

	h.coordinator.Disconnect(ctx, connectionID)
	connectionSink.Close()
	<-written
	h.log.Info("Connection closed", "connection", connectionID, "user", userID)
}

// Close ends every open session and waits until each one has been
// disconnected from the coordinator. New sessions are refused from then on.
func (h *Handler) Close(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	for conn := range h.conns {
		_ = conn.Close()
	}
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.active.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handler) enter() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.active.Add(1)
	return true
}

func (h *Handler) track(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[conn] = struct{}{}
	return true
}

func (h *Handler) untrack(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// identify prefers a bearer token, then a token query parameter, then the
// bare userId query parameter when allowed. An empty id without error means
// no identity was presented, which Connect rejects.
func (h *Handler) identify(r *http.Request) (string, error) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token != "" {
		return h.tokens.Validate(token)
	}
	if h.options.AllowQueryIdentity {
		return r.URL.Query().Get("userId"), nil
	}
	return "", nil
}

func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, connectionID string) {
	conn.SetReadLimit(h.options.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.options.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.options.PongWait))
	})
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("Connection lost", "connection", connectionID, "error", err)
			}
			return
		}
		envelope, err := Decode(raw)
		if err != nil {
			h.coordinator.Fail(ctx, connectionID, "decode", err)
			continue
		}
		if err := Dispatch(ctx, h.coordinator, connectionID, envelope); err != nil {
			h.log.Debug("Operation not applied", "connection", connectionID, "event", envelope.Event, "error", err)
		}
	}
}

// writeLoop is the only writer of conn. It ends when the sink is closed or
// a write fails, closing conn so the read loop stops too.
func (h *Handler) writeLoop(conn *websocket.Conn, connectionSink *sink.ConnectionSink) {
	ticker := time.NewTicker(h.options.PongWait * 9 / 10)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case e, ok := <-connectionSink.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(h.options.WriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			frame, err := Encode(e)
			if err != nil {
				h.log.Error("Unable to encode event", "event", e.Type, "error", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.log.Debug("Write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.options.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// reject tells the client why the session was refused and closes it.
func (h *Handler) reject(conn *websocket.Conn, err error) {
	_ = conn.SetWriteDeadline(time.Now().Add(h.options.WriteWait))
	if frame, encodeErr := Encode(event.New(event.ErrorType, "", event.Error{Message: errors.PublicMessage(err)})); encodeErr == nil {
		_ = conn.WriteMessage(websocket.TextMessage, frame)
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, errors.PublicMessage(err)))
}
