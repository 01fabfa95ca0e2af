package chat

import "time"

type RoomID string

type Room struct {
	ID        RoomID
	Name      string
	CreatedAt time.Time
}

// User is the directory view of an account, including the presence summary
// mirrored from the presence tracker.
type User struct {
	ID              string
	Name            string
	IsOnline        bool
	LastSeen        time.Time
	PresenceVersion int64
}

// DisplayName falls back to the identifier when no name is known.
func (u User) DisplayName() string {
	if u.Name == "" {
		return u.ID
	}
	return u.Name
}
