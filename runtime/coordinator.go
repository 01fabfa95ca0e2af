package runtime

import (
	"campus-chat/contract"
	"campus-chat/domain/chat"
	"campus-chat/domain/event"
	"campus-chat/errors"
	"campus-chat/observability"
	"campus-chat/repositories"
	"campus-chat/services"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const DefaultReplySnippetLength = 200

type session struct {
	userID   string
	lastRoom chat.RoomID
}

// Coordinator drives the lifecycle of every connection and the room-scoped
// operations issued on it. Each operation is handled to completion; errors
// are reported to the originating connection only and returned to the
// transport for logging.
type Coordinator struct {
	log           *slog.Logger
	registry      contract.IRegistry
	presence      *PresenceTracker
	clock         *LamportClock
	participants  services.IParticipantService
	delivery      services.IDeliveryQueue
	receipts      services.IReceiptService
	typing        services.ITypingTracker
	messages      repositories.IMessageRepository
	users         repositories.IUserRepository
	scheduler     contract.Scheduler
	snippetLength int

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewCoordinator(log *slog.Logger,
	registry contract.IRegistry,
	presence *PresenceTracker,
	clock *LamportClock,
	participants services.IParticipantService,
	delivery services.IDeliveryQueue,
	receipts services.IReceiptService,
	typing services.ITypingTracker,
	messages repositories.IMessageRepository,
	users repositories.IUserRepository,
	scheduler contract.Scheduler,
	snippetLength int) *Coordinator {
	if snippetLength <= 0 {
		snippetLength = DefaultReplySnippetLength
	}
	c := &Coordinator{
		log:           log,
		registry:      registry,
		presence:      presence,
		clock:         clock,
		participants:  participants,
		delivery:      delivery,
		receipts:      receipts,
		typing:        typing,
		messages:      messages,
		users:         users,
		scheduler:     scheduler,
		snippetLength: snippetLength,
		sessions:      make(map[string]*session),
	}
	typing.OnExpire(c.typingExpired)
	return c
}

// Connect opens a session for userID. A missing identity rejects the
// connection before anything is registered. An initial room is only a hint:
// failing to ensure its membership does not abort the connection.
func (c *Coordinator) Connect(ctx context.Context, connectionID, userID string, room chat.RoomID, sink contract.EventSink) error {
	if userID == "" {
		return errors.ErrMissingIdentity
	}
	c.registry.Attach(connectionID, sink)
	c.mu.Lock()
	c.sessions[connectionID] = &session{userID: userID}
	c.mu.Unlock()

	if room != "" {
		if _, err := c.participants.EnsureParticipant(ctx, userID, room); err != nil {
			c.log.Warn("Initial room membership not ensured", "user", userID, "room", room, "error", err)
		}
	}

	c.userOnline(ctx, connectionID, userID)

	return c.registry.Send(ctx, connectionID, event.New(event.ConnectedType, "", event.Connected{
		ConnectionID: connectionID,
		UserID:       userID,
		Message:      "Successfully connected to chat server",
	}))
}

// Reconnect re-registers presence of an existing session and resubscribes
// it to the last room it joined.
func (c *Coordinator) Reconnect(ctx context.Context, connectionID string) (err error) {
	defer c.guard(ctx, connectionID, "reconnect", &err)
	s, err := c.session(connectionID)
	if err != nil {
		return err
	}

	c.mu.RLock()
	lastRoom := s.lastRoom
	c.mu.RUnlock()

	c.userOnline(ctx, connectionID, s.userID)
	if lastRoom != "" {
		c.registry.Subscribe(connectionID, lastRoom)
	}

	return c.registry.Send(ctx, connectionID, event.New(event.ReconnectedType, "", event.Connected{
		ConnectionID: connectionID,
		UserID:       s.userID,
		Message:      "Successfully reconnected",
	}))
}

// Disconnect closes the session: presence first, then every room the
// connection was subscribed to is told the user stopped typing and left.
func (c *Coordinator) Disconnect(ctx context.Context, connectionID string) {
	c.mu.Lock()
	s, ok := c.sessions[connectionID]
	delete(c.sessions, connectionID)
	c.mu.Unlock()

	rooms := c.registry.Detach(connectionID)
	if !ok {
		return
	}

	userID, wentOffline, err := c.presence.ConnectionClosed(connectionID)
	if err != nil {
		c.log.Warn("Presence not persisted", "user", userID, "error", err)
	}
	if wentOffline {
		c.broadcastPresence(ctx, s.userID, false)
	}

	for _, room := range rooms {
		c.leftRoom(ctx, connectionID, s.userID, room)
	}
	c.log.Debug("Connection closed", "connection", connectionID, "user", s.userID, "rooms", len(rooms))
}

func (c *Coordinator) JoinRoom(ctx context.Context, connectionID string, cmd chat.JoinRoomCommand) (err error) {
	defer c.guard(ctx, connectionID, "join_room", &err)
	if err := chat.Validate(cmd); err != nil {
		return err
	}
	s, err := c.session(connectionID)
	if err != nil {
		return err
	}
	if cmd.UserID != "" && cmd.UserID != s.userID {
		return errors.ErrIdentityMismatch
	}
	if err := c.gate(ctx, s.userID, cmd.Room); err != nil {
		return err
	}

	c.registry.Subscribe(connectionID, cmd.Room)
	c.mu.Lock()
	s.lastRoom = cmd.Room
	c.mu.Unlock()

	c.emit(ctx, cmd.Room, event.New(event.UserJoinedType, cmd.Room, event.UserJoined{
		Room:      cmd.Room,
		UserID:    s.userID,
		Timestamp: c.scheduler.Now(),
	}).ExceptConnection(connectionID))

	return c.registry.Send(ctx, connectionID, event.New(event.JoinedRoomType, cmd.Room, event.JoinedRoom{
		Room:    cmd.Room,
		Message: "Successfully joined room",
	}))
}

func (c *Coordinator) LeaveRoom(ctx context.Context, connectionID string, cmd chat.LeaveRoomCommand) (err error) {
	defer c.guard(ctx, connectionID, "leave_room", &err)
	if err := chat.Validate(cmd); err != nil {
		return err
	}
	s, err := c.session(connectionID)
	if err != nil {
		return err
	}

	c.registry.Unsubscribe(connectionID, cmd.Room)
	c.mu.Lock()
	if s.lastRoom == cmd.Room {
		s.lastRoom = ""
	}
	c.mu.Unlock()

	c.leftRoom(ctx, connectionID, s.userID, cmd.Room)
	return c.registry.Send(ctx, connectionID, event.New(event.LeftRoomType, cmd.Room, event.LeftRoom{Room: cmd.Room}))
}

// SendMessage stamps, stores and fans out a message.
// A reused idempotency key is acknowledged as duplicate without a second
// message or broadcast. Validation and reply checks happen before the clock
// moves, so a rejected send leaves no trace.
func (c *Coordinator) SendMessage(ctx context.Context, connectionID string, cmd chat.SendMessageCommand) (err error) {
	defer c.guard(ctx, connectionID, "send_message", &err)
	if err := chat.Validate(cmd); err != nil {
		return err
	}
	s, err := c.session(connectionID)
	if err != nil {
		return err
	}
	if err := c.gate(ctx, s.userID, cmd.Room); err != nil {
		return err
	}
	if !c.registry.IsSubscribed(connectionID, cmd.Room) {
		return errors.ErrNotInRoom
	}

	existing, err := c.messages.GetByIdempotencyKey(cmd.IdempotencyKey)
	switch {
	case err == nil:
		return c.acknowledge(ctx, connectionID, existing.ID, cmd.IdempotencyKey, event.SendStatusDuplicate)
	case !errors.Is(err, errors.ErrMessageNotFound):
		return fmt.Errorf("lookup idempotency key: %w", err)
	}

	reply, err := c.resolveReply(cmd)
	if err != nil {
		return err
	}

	message := chat.Message{
		ID:               uuid.New(),
		Room:             cmd.Room,
		SenderID:         s.userID,
		Content:          cmd.Content,
		LogicalTimestamp: c.clock.Advance(cmd.Room, cmd.LogicalTimestamp),
		IdempotencyKey:   cmd.IdempotencyKey,
		Status:           chat.StatusPending,
		Type:             cmd.MessageType(),
		Attachment:       cmd.Attachment(),
		ReplyTo:          reply,
		CreatedAt:        c.scheduler.Now(),
	}
	switch err := c.messages.StoreMessage(message); {
	case errors.Is(err, errors.ErrDuplicateIdempotencyKey):
		winner, err := c.messages.GetByIdempotencyKey(cmd.IdempotencyKey)
		if err != nil {
			return fmt.Errorf("re-read duplicate message: %w", err)
		}
		return c.acknowledge(ctx, connectionID, winner.ID, cmd.IdempotencyKey, event.SendStatusDuplicate)
	case err != nil:
		return fmt.Errorf("store message: %w", err)
	}

	if _, err := c.delivery.Enqueue(ctx, message); err != nil && !errors.Is(err, errors.ErrDuplicateEntry) {
		c.log.Error("Message not enqueued", "message", message.ID, "error", err)
	}
	if _, err := c.delivery.AttemptDelivery(ctx, message, c.FanOut); err != nil {
		c.log.Error("Delivery bookkeeping failed", "message", message.ID, "error", err)
	}

	return c.acknowledge(ctx, connectionID, message.ID, cmd.IdempotencyKey, event.SendStatusSent)
}

// FanOut broadcasts a stored message to its room, sender included.
// It is the delivery action retried by the delivery queue.
func (c *Coordinator) FanOut(ctx context.Context, message chat.Message) error {
	senderName := message.SenderID
	user, err := c.users.GetUser(message.SenderID)
	switch {
	case err == nil:
		senderName = user.DisplayName()
	case !errors.Is(err, errors.ErrUserNotFound):
		return fmt.Errorf("%w: resolve sender: %v", errors.ErrDelivery, err)
	}
	e := event.New(event.NewMessageType, message.Room, event.FromMessage(message, senderName))
	if err := c.registry.Emit(ctx, message.Room, e); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDelivery, err)
	}
	return nil
}

// TypingStart is best effort: any failure is swallowed.
func (c *Coordinator) TypingStart(ctx context.Context, connectionID string, cmd chat.TypingCommand) {
	defer c.quiet(connectionID, "typing_start")
	s, ok := c.typingSession(connectionID, cmd)
	if !ok {
		return
	}
	if err := c.gate(ctx, s.userID, cmd.Room); err != nil {
		c.log.Debug("Typing ignored", "user", s.userID, "room", cmd.Room, "error", err)
		return
	}
	c.typing.SetTyping(cmd.Room, s.userID)
	c.emit(ctx, cmd.Room, event.New(event.UserTypingType, cmd.Room, event.UserTyping{
		Room:     cmd.Room,
		UserID:   s.userID,
		IsTyping: true,
	}).ExceptConnection(connectionID))
}

func (c *Coordinator) TypingStop(ctx context.Context, connectionID string, cmd chat.TypingCommand) {
	defer c.quiet(connectionID, "typing_stop")
	s, ok := c.typingSession(connectionID, cmd)
	if !ok {
		return
	}
	c.typing.ClearTyping(cmd.Room, s.userID)
	c.emit(ctx, cmd.Room, event.New(event.UserTypingType, cmd.Room, event.UserTyping{
		Room:     cmd.Room,
		UserID:   s.userID,
		IsTyping: false,
	}).ExceptConnection(connectionID))
}

// MarkRead broadcasts the receipt to the room the first time it is created
// and acknowledges the reader every time.
func (c *Coordinator) MarkRead(ctx context.Context, connectionID string, cmd chat.MarkReadCommand) (err error) {
	defer c.guard(ctx, connectionID, "mark_read", &err)
	if err := chat.Validate(cmd); err != nil {
		return err
	}
	s, err := c.session(connectionID)
	if err != nil {
		return err
	}
	if err := c.gate(ctx, s.userID, cmd.Room); err != nil {
		return err
	}
	return c.markRead(ctx, connectionID, s.userID, cmd.Room, uuid.MustParse(cmd.MessageID))
}

// MarkMultipleRead is best effort over every id; unreadable ids are skipped.
func (c *Coordinator) MarkMultipleRead(ctx context.Context, connectionID string, cmd chat.MarkMultipleReadCommand) (err error) {
	defer c.guard(ctx, connectionID, "mark_multiple_read", &err)
	if err := chat.Validate(cmd); err != nil {
		return err
	}
	s, err := c.session(connectionID)
	if err != nil {
		return err
	}
	if err := c.gate(ctx, s.userID, cmd.Room); err != nil {
		return err
	}
	ids := lo.Map(lo.Uniq(cmd.MessageIDs), func(id string, _ int) uuid.UUID {
		return uuid.MustParse(id)
	})
	for _, marked := range c.receipts.MarkMultipleRead(ctx, ids, cmd.Room, s.userID) {
		if err := c.announceRead(ctx, connectionID, marked); err != nil {
			c.log.Debug("Read acknowledgement not sent", "message", marked.Receipt.MessageID, "error", err)
		}
	}
	return nil
}

// GetMessages returns a page of the room history in logical order.
func (c *Coordinator) GetMessages(ctx context.Context, connectionID string, cmd chat.GetMessagesCommand) (err error) {
	defer c.guard(ctx, connectionID, "get_messages", &err)
	if err := chat.Validate(cmd); err != nil {
		return err
	}
	s, err := c.session(connectionID)
	if err != nil {
		return err
	}
	if err := c.gate(ctx, s.userID, cmd.Room); err != nil {
		return err
	}

	messages, err := c.messages.GetMessages(cmd.Room, cmd.PageLimit(), cmd.Skip)
	if err != nil {
		return fmt.Errorf("get messages: %w", err)
	}
	names := make(map[string]string)
	views := lo.Map(messages, func(m chat.Message, _ int) event.NewMessage {
		name, ok := names[m.SenderID]
		if !ok {
			name = c.displayName(m.SenderID)
			names[m.SenderID] = name
		}
		return event.FromMessage(m, name)
	})

	return c.registry.Send(ctx, connectionID, event.New(event.MessagesType, cmd.Room, event.Messages{
		Room:     cmd.Room,
		Messages: views,
		Count:    len(views),
	}))
}

// GetOnlineUsers lists the room's participants holding at least one connection.
func (c *Coordinator) GetOnlineUsers(ctx context.Context, connectionID string, cmd chat.RoomQueryCommand) (err error) {
	defer c.guard(ctx, connectionID, "get_online_users", &err)
	if err := chat.Validate(cmd); err != nil {
		return err
	}
	if _, err := c.session(connectionID); err != nil {
		return err
	}
	members, err := c.participants.Participants(ctx, cmd.Room)
	if err != nil {
		return fmt.Errorf("list participants: %w", err)
	}
	online := c.presence.OnlineAmong(members)

	return c.registry.Send(ctx, connectionID, event.New(event.OnlineUsersType, cmd.Room, event.OnlineUsers{
		Room:  cmd.Room,
		Users: online,
		Count: len(online),
	}))
}

func (c *Coordinator) GetUnreadCount(ctx context.Context, connectionID string, cmd chat.RoomQueryCommand) (err error) {
	defer c.guard(ctx, connectionID, "get_unread_count", &err)
	if err := chat.Validate(cmd); err != nil {
		return err
	}
	s, err := c.session(connectionID)
	if err != nil {
		return err
	}
	count, err := c.receipts.UnreadCount(ctx, cmd.Room, s.userID)
	if err != nil {
		return err
	}
	return c.registry.Send(ctx, connectionID, event.New(event.UnreadCountType, cmd.Room, event.UnreadCount{
		Room:  cmd.Room,
		Count: count,
	}))
}

// Fail reports an error raised outside of an operation, such as an
// undecodable frame, to the originating connection.
func (c *Coordinator) Fail(ctx context.Context, connectionID, operation string, err error) {
	c.guard(ctx, connectionID, operation, &err)
}

func (c *Coordinator) markRead(ctx context.Context, connectionID, userID string, room chat.RoomID, messageID uuid.UUID) error {
	receipt, created, err := c.receipts.MarkRead(ctx, messageID, room, userID)
	if err != nil {
		return err
	}
	return c.announceRead(ctx, connectionID, chat.MarkedReceipt{Receipt: receipt, Created: created})
}

// announceRead broadcasts a receipt the first time it exists and always
// acknowledges the reader.
func (c *Coordinator) announceRead(ctx context.Context, connectionID string, marked chat.MarkedReceipt) error {
	receipt := marked.Receipt
	if marked.Created {
		c.emit(ctx, receipt.Room, event.New(event.ReadReceiptType, receipt.Room, event.ReadReceipt{
			MessageID: receipt.MessageID,
			Room:      receipt.Room,
			UserID:    receipt.UserID,
			ReadAt:    receipt.ReadAt,
		}))
	}
	return c.registry.Send(ctx, connectionID, event.New(event.MarkedReadType, receipt.Room, event.MarkedRead{
		MessageID: receipt.MessageID,
		Status:    "success",
	}))
}

func (c *Coordinator) acknowledge(ctx context.Context, connectionID string, id uuid.UUID, key string, status event.SendStatus) error {
	observability.MessagesSent.WithLabelValues(string(status)).Inc()
	return c.registry.Send(ctx, connectionID, event.New(event.MessageSentType, "", event.MessageSent{
		MessageID:      id,
		IdempotencyKey: key,
		Status:         status,
	}))
}

// resolveReply captures the reply reference at write time. A target from
// another room is refused; a missing target keeps the reference with a
// placeholder snippet.
func (c *Coordinator) resolveReply(cmd chat.SendMessageCommand) (*chat.ReplyRef, error) {
	if cmd.ReplyTo == "" {
		return nil, nil
	}
	id := uuid.MustParse(cmd.ReplyTo)
	target, err := c.messages.GetMessage(id)
	if errors.Is(err, errors.ErrMessageNotFound) {
		return &chat.ReplyRef{
			MessageID: id,
			Snippet:   lo.Ternary(cmd.ReplySnippet != "", cmd.ReplySnippet, chat.DeletedReplySnippet),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve reply target: %w", err)
	}
	if target.Room != cmd.Room {
		return nil, errors.ErrCrossRoomReply
	}
	return &chat.ReplyRef{
		MessageID:  id,
		SenderName: c.displayName(target.SenderID),
		Snippet:    lo.Ternary(cmd.ReplySnippet != "", cmd.ReplySnippet, target.Snippet(c.snippetLength)),
	}, nil
}

// gate runs the participant check; any failure is a refusal.
func (c *Coordinator) gate(ctx context.Context, userID string, room chat.RoomID) error {
	if _, err := c.participants.EnsureParticipant(ctx, userID, room); err != nil {
		if errors.Expected(err) {
			return fmt.Errorf("%w: %w", errors.ErrNotParticipant, err)
		}
		return err
	}
	return nil
}

func (c *Coordinator) session(connectionID string) (*session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[connectionID]
	if !ok {
		return nil, errors.ErrUnknownConnection
	}
	return s, nil
}

func (c *Coordinator) typingSession(connectionID string, cmd chat.TypingCommand) (*session, bool) {
	if err := chat.Validate(cmd); err != nil {
		return nil, false
	}
	s, err := c.session(connectionID)
	if err != nil {
		return nil, false
	}
	return s, c.registry.IsSubscribed(connectionID, cmd.Room)
}

func (c *Coordinator) userOnline(ctx context.Context, connectionID, userID string) {
	wasOffline, err := c.presence.ConnectionOpened(connectionID, userID)
	if err != nil {
		c.log.Warn("Presence not persisted", "user", userID, "error", err)
	}
	if wasOffline {
		c.broadcastPresence(ctx, userID, true)
	}
}

func (c *Coordinator) broadcastPresence(ctx context.Context, userID string, online bool) {
	e := event.New(event.PresenceUpdateType, "", event.PresenceUpdate{
		UserID:   userID,
		IsOnline: online,
		LastSeen: c.scheduler.Now(),
	})
	if err := c.registry.EmitAll(ctx, e); err != nil {
		c.log.Warn("Presence update not broadcast", "user", userID, "error", err)
	}
}

func (c *Coordinator) leftRoom(ctx context.Context, connectionID, userID string, room chat.RoomID) {
	c.typing.ClearTyping(room, userID)
	c.emit(ctx, room, event.New(event.UserTypingType, room, event.UserTyping{
		Room:     room,
		UserID:   userID,
		IsTyping: false,
	}).ExceptConnection(connectionID))
	c.emit(ctx, room, event.New(event.UserLeftType, room, event.UserLeft{
		Room:      room,
		UserID:    userID,
		Timestamp: c.scheduler.Now(),
	}).ExceptConnection(connectionID))
}

func (c *Coordinator) typingExpired(room chat.RoomID, userID string) {
	c.emit(context.Background(), room, event.New(event.UserTypingType, room, event.UserTyping{
		Room:     room,
		UserID:   userID,
		IsTyping: false,
	}))
}

func (c *Coordinator) emit(ctx context.Context, room chat.RoomID, e event.Event) {
	if err := c.registry.Emit(ctx, room, e); err != nil {
		c.log.Warn("Event not broadcast", "room", room, "event", e.Type, "error", err)
	}
}

func (c *Coordinator) displayName(userID string) string {
	user, err := c.users.GetUser(userID)
	if err != nil {
		return userID
	}
	return user.DisplayName()
}

// guard is deferred by every operation. It turns a panic into an internal
// error and reports any error to the originating connection only.
func (c *Coordinator) guard(ctx context.Context, connectionID, operation string, err *error) {
	if r := recover(); r != nil {
		c.log.Error("Operation panicked", "operation", operation, "connection", connectionID, "panic", r)
		*err = fmt.Errorf("%w: %v", errors.ErrInternal, r)
	}
	if *err == nil {
		return
	}
	observability.OperationErrors.WithLabelValues(operation, errorKind(*err)).Inc()
	if errors.Expected(*err) {
		c.log.Debug("Operation rejected", "operation", operation, "connection", connectionID, "error", *err)
	} else {
		c.log.Error("Operation failed", "operation", operation, "connection", connectionID, "error", *err)
	}
	e := event.New(event.ErrorType, "", event.Error{Message: errors.PublicMessage(*err)})
	if sendErr := c.registry.Send(ctx, connectionID, e); sendErr != nil {
		c.log.Debug("Error event not sent", "connection", connectionID, "error", sendErr)
	}
}

// quiet keeps a panic in a best-effort operation from reaching the transport.
func (c *Coordinator) quiet(connectionID, operation string) {
	if r := recover(); r != nil {
		c.log.Error("Operation panicked", "operation", operation, "connection", connectionID, "panic", r)
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, errors.ErrValidation):
		return "validation"
	case errors.Is(err, errors.ErrForbidden):
		return "forbidden"
	case errors.Is(err, errors.ErrNotFound):
		return "not_found"
	case errors.Is(err, errors.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, errors.ErrDelivery):
		return "delivery"
	default:
		return "internal"
	}
}
