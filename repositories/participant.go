//go:generate go run go.uber.org/mock/mockgen -source=participant.go -destination=../mocks/mock_participant_repository.go -package=mocks
package repositories

import (
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IParticipantRepository interface {
	CreateParticipant(participant chat.Participant) error
	GetParticipant(room chat.RoomID, userID string) (chat.Participant, error)
	ListParticipants(room chat.RoomID) ([]chat.Participant, error)
	CountParticipants(room chat.RoomID) (int, error)
	TouchLastRead(room chat.RoomID, userID string, at time.Time) error
}

type ParticipantRepository struct {
	db *badger.DB
}

func NewParticipantRepository(db *badger.DB) ParticipantRepository {
	return ParticipantRepository{db: db}
}

type DiskParticipant struct {
	Room       string `json:"room"`
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	JoinedAt   int64  `json:"joined_at"`
	LastReadAt int64  `json:"last_read_at"`
}

func participantPrefix(room chat.RoomID) string {
	return fmt.Sprintf("participant:%s:", segment(string(room)))
}

func participantKey(room chat.RoomID, userID string) string {
	return participantPrefix(room) + userID
}

// CreateParticipant inserts a membership record; (room, user) is unique and a
// second insert, concurrent or not, fails with ErrDuplicateParticipant.
func (p ParticipantRepository) CreateParticipant(participant chat.Participant) error {
	key := participantKey(participant.Room, participant.UserID)
	return insertUnique(p.db, key, errors.ErrDuplicateParticipant, func(txn *badger.Txn) error {
		return setJSON(txn, key, fromParticipant(participant))
	})
}

func (p ParticipantRepository) GetParticipant(room chat.RoomID, userID string) (chat.Participant, error) {
	var disk DiskParticipant
	err := p.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, participantKey(room, userID), &disk, errors.ErrParticipantNotFound)
	})
	if err != nil {
		return chat.Participant{}, err
	}
	return toParticipant(disk), nil
}

func (p ParticipantRepository) ListParticipants(room chat.RoomID) ([]chat.Participant, error) {
	var participants []chat.Participant
	err := p.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, participantPrefix(room), func(_, val []byte) error {
			var disk DiskParticipant
			if err := json.Unmarshal(val, &disk); err != nil {
				return err
			}
			participants = append(participants, toParticipant(disk))
			return nil
		})
	})
	return participants, err
}

func (p ParticipantRepository) CountParticipants(room chat.RoomID) (int, error) {
	var count int
	err := p.db.View(func(txn *badger.Txn) error {
		count = countPrefix(txn, participantPrefix(room))
		return nil
	})
	return count, err
}

func (p ParticipantRepository) TouchLastRead(room chat.RoomID, userID string, at time.Time) error {
	key := participantKey(room, userID)
	return updateWithRetry(p.db, func(txn *badger.Txn) error {
		var disk DiskParticipant
		if err := getJSON(txn, key, &disk, errors.ErrParticipantNotFound); err != nil {
			return err
		}
		if at.UnixNano() <= disk.LastReadAt {
			return nil
		}
		disk.LastReadAt = at.UnixNano()
		return setJSON(txn, key, disk)
	})
}

func fromParticipant(p chat.Participant) DiskParticipant {
	return DiskParticipant{
		Room:       string(p.Room),
		UserID:     p.UserID,
		Role:       string(p.Role),
		JoinedAt:   p.JoinedAt.UnixNano(),
		LastReadAt: p.LastReadAt.UnixNano(),
	}
}

func toParticipant(disk DiskParticipant) chat.Participant {
	return chat.Participant{
		Room:       chat.RoomID(disk.Room),
		UserID:     disk.UserID,
		Role:       chat.Role(disk.Role),
		JoinedAt:   time.Unix(0, disk.JoinedAt).UTC(),
		LastReadAt: time.Unix(0, disk.LastReadAt).UTC(),
	}
}
