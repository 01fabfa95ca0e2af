package runtime

import (
	"campus-chat/contract"
	"campus-chat/observability"
	"campus-chat/repositories"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

type Set map[string]struct{}

// PresenceTracker maps users to their open connections.
// Only the 0→1 and 1→0 transitions of a user's connection count are reported,
// so several tabs or devices never make a user flap.
// The summary mirrored to the user record is written after the lock is
// released, tagged with a version so an older transition cannot win.
type PresenceTracker struct {
	log       *slog.Logger
	users     repositories.IUserRepository
	scheduler contract.Scheduler

	mu          sync.Mutex
	connections map[string]Set    // user -> connections
	owners      map[string]string // connection -> user
	version     int64
}

func NewPresenceTracker(log *slog.Logger, users repositories.IUserRepository, scheduler contract.Scheduler) *PresenceTracker {
	return &PresenceTracker{
		log:         log,
		users:       users,
		scheduler:   scheduler,
		connections: make(map[string]Set),
		owners:      make(map[string]string),
	}
}

// ConnectionOpened registers connectionID under userID and reports whether
// the user was offline before. Registering a known connection is a no-op.
// The error only concerns the persisted summary; the in-memory state and the
// returned transition are valid regardless.
func (p *PresenceTracker) ConnectionOpened(connectionID, userID string) (bool, error) {
	p.mu.Lock()
	if _, known := p.owners[connectionID]; known {
		p.mu.Unlock()
		return false, nil
	}
	conns, ok := p.connections[userID]
	if !ok {
		conns = make(Set)
		p.connections[userID] = conns
	}
	wasOffline := len(conns) == 0
	conns[connectionID] = struct{}{}
	p.owners[connectionID] = userID
	var version int64
	if wasOffline {
		version = p.nextVersion()
	}
	online := len(p.connections)
	p.mu.Unlock()

	observability.Connections.Inc()
	if !wasOffline {
		return false, nil
	}
	observability.OnlineUsers.Set(float64(online))
	return true, p.persist(userID, true, version)
}

// ConnectionClosed forgets connectionID and reports its user and whether the
// user just went offline. Unknown connections report ("", false).
func (p *PresenceTracker) ConnectionClosed(connectionID string) (string, bool, error) {
	p.mu.Lock()
	userID, ok := p.owners[connectionID]
	if !ok {
		p.mu.Unlock()
		return "", false, nil
	}
	delete(p.owners, connectionID)
	conns := p.connections[userID]
	delete(conns, connectionID)
	wentOffline := len(conns) == 0
	var version int64
	if wentOffline {
		delete(p.connections, userID)
		version = p.nextVersion()
	}
	online := len(p.connections)
	p.mu.Unlock()

	observability.Connections.Dec()
	if !wentOffline {
		return userID, false, nil
	}
	observability.OnlineUsers.Set(float64(online))
	return userID, true, p.persist(userID, false, version)
}

func (p *PresenceTracker) IsOnline(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.connections[userID]) > 0
}

// Connections returns how many connections userID holds.
func (p *PresenceTracker) Connections(userID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.connections[userID])
}

// OnlineUsers returns every online user, sorted.
func (p *PresenceTracker) OnlineUsers() []string {
	p.mu.Lock()
	users := make([]string, 0, len(p.connections))
	for userID := range p.connections {
		users = append(users, userID)
	}
	p.mu.Unlock()
	sort.Strings(users)
	return users
}

// OnlineAmong keeps the online users of userIDs, in their given order.
func (p *PresenceTracker) OnlineAmong(userIDs []string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	online := make([]string, 0, len(userIDs))
	for _, userID := range userIDs {
		if len(p.connections[userID]) > 0 {
			online = append(online, userID)
		}
	}
	return online
}

func (p *PresenceTracker) persist(userID string, online bool, version int64) error {
	if err := p.users.SetPresence(userID, online, p.now(), version); err != nil {
		return fmt.Errorf("persist presence of %s: %w", userID, err)
	}
	return nil
}

// nextVersion is strictly increasing and starts from the wall clock, so a
// restarted process still writes versions above the ones it left behind.
func (p *PresenceTracker) nextVersion() int64 {
	p.version = max(p.version+1, p.now().UnixNano())
	return p.version
}

func (p *PresenceTracker) now() time.Time {
	return p.scheduler.Now()
}
