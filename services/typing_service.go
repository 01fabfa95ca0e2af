//go:generate go run go.uber.org/mock/mockgen -source=typing_service.go -destination=../mocks/mock_typing_service.go -package=mocks
package services

import (
	"campus-chat/contract"
	"campus-chat/domain/chat"
	"campus-chat/observability"
	"log/slog"
	"sort"
	"sync"
	"time"
)

const (
	DefaultTypingTTL           = 30 * time.Second
	DefaultTypingSweepInterval = 5 * time.Minute
)

type ITypingTracker interface {
	SetTyping(room chat.RoomID, userID string) chat.TypingState
	ClearTyping(room chat.RoomID, userID string) bool
	ListTyping(room chat.RoomID) []string
	Sweep(now time.Time) int
	OnExpire(fn func(room chat.RoomID, userID string))
}

type typingKey struct {
	room   chat.RoomID
	userID string
}

type typingSlot struct {
	state      chat.TypingState
	generation uint64
	cancel     contract.Cancel
}

// TypingTracker holds typing states in memory only.
// Every SetTyping replaces the pending expiry timer, and a timer only acts on
// the generation it was armed for, so a stale timer can never clear a fresher
// signal.
type TypingTracker struct {
	log       *slog.Logger
	scheduler contract.Scheduler
	ttl       time.Duration

	mu       sync.Mutex
	slots    map[typingKey]*typingSlot
	onExpire func(room chat.RoomID, userID string)
}

func NewTypingTracker(log *slog.Logger, scheduler contract.Scheduler, ttl time.Duration) *TypingTracker {
	if ttl <= 0 {
		ttl = DefaultTypingTTL
	}
	return &TypingTracker{
		log:       log,
		scheduler: scheduler,
		ttl:       ttl,
		slots:     make(map[typingKey]*typingSlot),
	}
}

// OnExpire registers the callback run when a typing state times out.
func (t *TypingTracker) OnExpire(fn func(room chat.RoomID, userID string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onExpire = fn
}

func (t *TypingTracker) SetTyping(room chat.RoomID, userID string) chat.TypingState {
	key := typingKey{room: room, userID: userID}

	t.mu.Lock()
	defer t.mu.Unlock()
	slot, ok := t.slots[key]
	if !ok {
		slot = &typingSlot{}
		t.slots[key] = slot
	}
	if slot.cancel != nil {
		slot.cancel()
	}
	slot.generation++
	generation := slot.generation
	slot.state = chat.TypingState{
		Room:      room,
		UserID:    userID,
		IsTyping:  true,
		ExpiresAt: t.scheduler.Now().Add(t.ttl),
	}
	slot.cancel = t.scheduler.AfterFunc(t.ttl, func() {
		t.expire(key, generation)
	})
	return slot.state
}

// ClearTyping stops the typing state and reports whether it was active.
func (t *TypingTracker) ClearTyping(room chat.RoomID, userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	slot, ok := t.slots[typingKey{room: room, userID: userID}]
	if !ok {
		return false
	}
	if slot.cancel != nil {
		slot.cancel()
		slot.cancel = nil
	}
	wasTyping := slot.state.IsTyping
	slot.state.IsTyping = false
	return wasTyping
}

// ListTyping returns the users of room currently typing, sorted.
func (t *TypingTracker) ListTyping(room chat.RoomID) []string {
	now := t.scheduler.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	var users []string
	for key, slot := range t.slots {
		if key.room == room && slot.state.Active(now) {
			users = append(users, key.userID)
		}
	}
	sort.Strings(users)
	return users
}

// Sweep deletes every state whose expiry has passed and returns how many
// were removed. States still flagged as typing are reported as expired.
func (t *TypingTracker) Sweep(now time.Time) int {
	var expired []typingKey
	removed := 0

	t.mu.Lock()
	for key, slot := range t.slots {
		if slot.state.ExpiresAt.After(now) {
			continue
		}
		if slot.cancel != nil {
			slot.cancel()
		}
		if slot.state.IsTyping {
			expired = append(expired, key)
		}
		delete(t.slots, key)
		removed++
	}
	notify := t.onExpire
	t.mu.Unlock()

	for _, key := range expired {
		t.notifyExpired(notify, key)
	}
	if removed > 0 {
		t.log.Debug("Typing states swept", "removed", removed)
	}
	return removed
}

func (t *TypingTracker) expire(key typingKey, generation uint64) {
	t.mu.Lock()
	slot, ok := t.slots[key]
	if !ok || slot.generation != generation || !slot.state.IsTyping {
		t.mu.Unlock()
		return
	}
	slot.state.IsTyping = false
	slot.cancel = nil
	notify := t.onExpire
	t.mu.Unlock()

	t.notifyExpired(notify, key)
}

func (t *TypingTracker) notifyExpired(notify func(chat.RoomID, string), key typingKey) {
	observability.TypingExpired.Inc()
	if notify != nil {
		notify(key.room, key.userID)
	}
}
