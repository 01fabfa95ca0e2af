//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_room_repository.go -package=mocks
package repositories

import (
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IRoomRepository interface {
	CreateRoom(room chat.Room) error
	GetRoom(id chat.RoomID) (chat.Room, error)
	ListRooms() ([]chat.Room, error)
}

type RoomRepository struct {
	db *badger.DB
}

func NewRoomRepository(db *badger.DB) RoomRepository {
	return RoomRepository{db: db}
}

type DiskRoom struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

const roomPrefix = "room:"

func roomKey(id chat.RoomID) string {
	return roomPrefix + string(id)
}

func (r RoomRepository) CreateRoom(room chat.Room) error {
	key := roomKey(room.ID)
	return insertUnique(r.db, key, errors.ErrDuplicateRecord, func(txn *badger.Txn) error {
		return setJSON(txn, key, DiskRoom{
			ID:        string(room.ID),
			Name:      room.Name,
			CreatedAt: unixNano(room.CreatedAt),
		})
	})
}

func (r RoomRepository) GetRoom(id chat.RoomID) (chat.Room, error) {
	var disk DiskRoom
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, roomKey(id), &disk, errors.ErrRoomNotFound)
	})
	if err != nil {
		return chat.Room{}, err
	}
	return toRoom(disk), nil
}

func (r RoomRepository) ListRooms() ([]chat.Room, error) {
	var rooms []chat.Room
	err := r.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, roomPrefix, func(_, val []byte) error {
			var disk DiskRoom
			if err := json.Unmarshal(val, &disk); err != nil {
				return err
			}
			rooms = append(rooms, toRoom(disk))
			return nil
		})
	})
	return rooms, err
}

func toRoom(disk DiskRoom) chat.Room {
	return chat.Room{
		ID:        chat.RoomID(disk.ID),
		Name:      disk.Name,
		CreatedAt: time.Unix(0, disk.CreatedAt).UTC(),
	}
}
