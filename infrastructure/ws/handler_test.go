package ws

import (
	"campus-chat/auth"
	"campus-chat/domain/chat"
	"campus-chat/domain/event"
	"campus-chat/repositories"
	"campus-chat/runtime"
	"campus-chat/scheduler"
	"campus-chat/services"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type server struct {
	url     string
	tokens  *auth.TokenIssuer
	handler *Handler
	users   repositories.UserRepository
}

func newServer(t *testing.T, options Options) server {
	t.Helper()
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	clock := scheduler.NewSystem()
	messages := repositories.NewMessageRepository(db, log)
	participants := repositories.NewParticipantRepository(db)
	receipts := repositories.NewReceiptRepository(db)
	queue := repositories.NewQueueRepository(db)
	users := repositories.NewUserRepository(db)
	rooms := repositories.NewRoomRepository(db)
	req.NoError(rooms.CreateRoom(chat.Room{ID: "r1", Name: "General", CreatedAt: clock.Now()}))
	req.NoError(users.SaveUser(chat.User{ID: "alice", Name: "Alice"}))
	req.NoError(users.SaveUser(chat.User{ID: "bob", Name: "Bob"}))

	delivery := services.NewDeliveryQueue(log, queue, messages, clock, chat.DefaultMaxRetries, chat.DefaultBackoff)
	t.Cleanup(delivery.Stop)
	coordinator := runtime.NewCoordinator(log,
		runtime.NewRegistry(log, time.Second),
		runtime.NewPresenceTracker(log, users, clock),
		runtime.NewLamportClock(),
		services.NewParticipantService(log, participants, rooms, users, clock),
		delivery,
		services.NewReceiptService(log, messages, receipts, participants, clock),
		services.NewTypingTracker(log, clock, services.DefaultTypingTTL),
		messages,
		users,
		clock,
		runtime.DefaultReplySnippetLength,
	)
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	handler := NewHandler(log, coordinator, tokens, options)
	httpServer := httptest.NewServer(handler)
	t.Cleanup(httpServer.Close)
	return server{url: "ws" + strings.TrimPrefix(httpServer.URL, "http"), tokens: tokens, handler: handler, users: users}
}

func (s server) dial(t *testing.T, query url.Values) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(s.url+"?"+query.Encode(), nil)
	if conn != nil {
		t.Cleanup(func() { _ = conn.Close() })
	}
	return conn, resp, err
}

func (s server) login(t *testing.T, userID string) *websocket.Conn {
	t.Helper()
	token, err := s.tokens.Generate(userID)
	require.NoError(t, err)
	conn, _, err := s.dial(t, url.Values{"token": {token}})
	require.NoError(t, err)
	await(t, conn, event.ConnectedType)
	return conn
}

type frame struct {
	Event event.Type      `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// await reads frames until one of type want arrives.
func await(t *testing.T, conn *websocket.Conn, want event.Type) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var f frame
		require.NoError(t, conn.ReadJSON(&f))
		if f.Event == want {
			return f
		}
	}
}

func write(t *testing.T, conn *websocket.Conn, name string, data any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{"event": name, "data": data}))
}

func TestHandler_Session_Round_Trip(t *testing.T) {
	req := require.New(t)
	s := newServer(t, Options{})
	alice := s.login(t, "alice")
	bob := s.login(t, "bob")

	// Given both users in the same room
	write(t, alice, JoinRoomEvent, map[string]string{"roomId": "r1"})
	await(t, alice, event.JoinedRoomType)
	write(t, bob, JoinRoomEvent, map[string]string{"roomId": "r1"})
	await(t, bob, event.JoinedRoomType)

	// When alice sends a message
	write(t, alice, SendMessageEvent, map[string]any{
		"roomId": "r1", "content": "hello", "lamportTimestamp": 3, "idempotencyKey": "k1",
	})

	// Then alice is acknowledged and bob receives the stamped message
	var sent event.MessageSent
	req.NoError(json.Unmarshal(await(t, alice, event.MessageSentType).Data, &sent))
	req.Equal(event.SendStatusSent, sent.Status)

	var received event.NewMessage
	req.NoError(json.Unmarshal(await(t, bob, event.NewMessageType).Data, &received))
	req.Equal("hello", received.Content)
	req.Equal("Alice", received.SenderName)
	req.Equal(int64(4), received.LogicalTimestamp)
	req.Equal(sent.MessageID, received.MessageID)

	// When bob marks it read
	write(t, bob, MarkReadEvent, map[string]string{"roomId": "r1", "messageId": received.MessageID.String()})

	// Then alice sees the receipt
	var receipt event.ReadReceipt
	req.NoError(json.Unmarshal(await(t, alice, event.ReadReceiptType).Data, &receipt))
	req.Equal("bob", receipt.UserID)
}

func TestHandler_Reports_Bad_Frames(t *testing.T) {
	req := require.New(t)
	s := newServer(t, Options{})
	alice := s.login(t, "alice")

	req.NoError(alice.WriteMessage(websocket.TextMessage, []byte("{")))
	var e event.Error
	req.NoError(json.Unmarshal(await(t, alice, event.ErrorType).Data, &e))
	req.Contains(e.Message, "malformed frame")

	write(t, alice, "shout", nil)
	req.NoError(json.Unmarshal(await(t, alice, event.ErrorType).Data, &e))
	req.Contains(e.Message, "unknown event")

	// When sending before joining
	write(t, alice, SendMessageEvent, map[string]any{
		"roomId": "r1", "content": "hello", "lamportTimestamp": 1, "idempotencyKey": "k1",
	})
	req.NoError(json.Unmarshal(await(t, alice, event.ErrorType).Data, &e))
	req.Equal("please join the room before sending messages", e.Message)
}

func TestHandler_Identity(t *testing.T) {
	req := require.New(t)

	s := newServer(t, Options{})

	// Given an invalid token, the upgrade is refused
	_, resp, err := s.dial(t, url.Values{"token": {"forged"}})
	req.Error(err)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)

	// Given no identity at all, the session is closed with an error frame
	conn, _, err := s.dial(t, url.Values{"userId": {"alice"}})
	req.NoError(err)
	var e event.Error
	req.NoError(json.Unmarshal(await(t, conn, event.ErrorType).Data, &e))
	req.Equal("userId is required for connection", e.Message)

	// Given query identity allowed, userId is enough
	open := newServer(t, Options{AllowQueryIdentity: true})
	conn, _, err = open.dial(t, url.Values{"userId": {"alice"}})
	req.NoError(err)
	var connected event.Connected
	req.NoError(json.Unmarshal(await(t, conn, event.ConnectedType).Data, &connected))
	req.Equal("alice", connected.UserID)
}

func TestHandler_Close_Disconnects_Open_Sessions(t *testing.T) {
	req := require.New(t)
	s := newServer(t, Options{})
	alice := s.login(t, "alice")
	user, err := s.users.GetUser("alice")
	req.NoError(err)
	req.True(user.IsOnline)

	// When the handler is closed
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	req.NoError(s.handler.Close(ctx))

	// Then the session went through the coordinator before Close returned
	user, err = s.users.GetUser("alice")
	req.NoError(err)
	req.False(user.IsOnline)
	req.NoError(alice.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err = alice.ReadMessage()
	req.Error(err)

	// And new sessions are refused
	token, err := s.tokens.Generate("bob")
	req.NoError(err)
	_, resp, err := s.dial(t, url.Values{"token": {token}})
	req.Error(err)
	req.Equal(http.StatusServiceUnavailable, resp.StatusCode)
}
