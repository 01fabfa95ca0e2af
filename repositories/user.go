//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// IUserRepository is the user directory plus the presence summary mirror.
type IUserRepository interface {
	SaveUser(user chat.User) error
	GetUser(id string) (chat.User, error)
	SetPresence(id string, online bool, lastSeen time.Time, version int64) error
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) UserRepository {
	return UserRepository{db: db}
}

type DiskUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	IsOnline        bool   `json:"is_online"`
	LastSeen        int64  `json:"last_seen"`
	PresenceVersion int64  `json:"presence_version"`
}

func userKey(id string) string {
	return "user:" + id
}

// SaveUser creates or replaces a directory entry.
func (u UserRepository) SaveUser(user chat.User) error {
	return u.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, userKey(user.ID), fromUser(user))
	})
}

func (u UserRepository) GetUser(id string) (chat.User, error) {
	var disk DiskUser
	err := u.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, userKey(id), &disk, errors.ErrUserNotFound)
	})
	if err != nil {
		return chat.User{}, err
	}
	return toUser(disk), nil
}

// SetPresence mirrors a presence transition onto the user record. Writes
// carrying a version not newer than the stored one are ignored, so a late
// write of an older transition cannot overwrite a newer one.
// Unknown users fail with ErrUserNotFound.
func (u UserRepository) SetPresence(id string, online bool, lastSeen time.Time, version int64) error {
	return updateWithRetry(u.db, func(txn *badger.Txn) error {
		var disk DiskUser
		if err := getJSON(txn, userKey(id), &disk, errors.ErrUserNotFound); err != nil {
			return err
		}
		if version <= disk.PresenceVersion {
			return nil
		}
		disk.IsOnline = online
		disk.LastSeen = lastSeen.UnixNano()
		disk.PresenceVersion = version
		return setJSON(txn, userKey(id), disk)
	})
}

func fromUser(user chat.User) DiskUser {
	return DiskUser{
		ID:              user.ID,
		Name:            user.Name,
		IsOnline:        user.IsOnline,
		LastSeen:        unixNano(user.LastSeen),
		PresenceVersion: user.PresenceVersion,
	}
}

func toUser(disk DiskUser) chat.User {
	return chat.User{
		ID:              disk.ID,
		Name:            disk.Name,
		IsOnline:        disk.IsOnline,
		LastSeen:        fromUnixNano(disk.LastSeen),
		PresenceVersion: disk.PresenceVersion,
	}
}
