package runtime

import (
	"campus-chat/domain/chat"
	"sync"
)

// LamportClock keeps one logical counter per room.
// Advance is atomic per room: two concurrent sends never get the same value.
type LamportClock struct {
	mu       sync.Mutex
	counters map[chat.RoomID]int64
}

func NewLamportClock() *LamportClock {
	return &LamportClock{counters: make(map[chat.RoomID]int64)}
}

// Current returns the room's counter, 0 for an unseen room.
func (c *LamportClock) Current(room chat.RoomID) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[room]
}

// Advance sets the counter to max(current, observed)+1 and returns it.
func (c *LamportClock) Advance(room chat.RoomID, observed int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := max(c.counters[room], observed) + 1
	c.counters[room] = next
	return next
}

// Increment stamps a server generated event.
func (c *LamportClock) Increment(room chat.RoomID) int64 {
	return c.Advance(room, 0)
}

// Reset forgets the room's counter.
func (c *LamportClock) Reset(room chat.RoomID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counters, room)
}
