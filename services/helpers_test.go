package services

import (
	"campus-chat/domain/chat"
	"campus-chat/repositories"
	"campus-chat/scheduler"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

type fixture struct {
	log          *slog.Logger
	clock        *scheduler.Manual
	messages     repositories.MessageRepository
	participants repositories.ParticipantRepository
	receipts     repositories.ReceiptRepository
	queue        repositories.QueueRepository
	users        repositories.UserRepository
	rooms        repositories.RoomRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return fixture{
		log:          log,
		clock:        scheduler.NewManual(epoch),
		messages:     repositories.NewMessageRepository(db, log),
		participants: repositories.NewParticipantRepository(db),
		receipts:     repositories.NewReceiptRepository(db),
		queue:        repositories.NewQueueRepository(db),
		users:        repositories.NewUserRepository(db),
		rooms:        repositories.NewRoomRepository(db),
	}
}

// seed creates the room and its users, all of them members.
func (f fixture) seed(t *testing.T, room chat.RoomID, users ...string) {
	t.Helper()
	req := require.New(t)
	if _, err := f.rooms.GetRoom(room); err != nil {
		req.NoError(f.rooms.CreateRoom(chat.Room{ID: room, Name: string(room), CreatedAt: f.clock.Now()}))
	}
	for _, u := range users {
		req.NoError(f.users.SaveUser(chat.User{ID: u, Name: u}))
		req.NoError(f.participants.CreateParticipant(chat.Participant{
			Room: room, UserID: u, Role: chat.RoleMember, JoinedAt: f.clock.Now(), LastReadAt: f.clock.Now(),
		}))
	}
}

func (f fixture) storeMessage(t *testing.T, room chat.RoomID, sender string, ts int64) chat.Message {
	t.Helper()
	message := chat.Message{
		ID:               uuid.New(),
		Room:             room,
		SenderID:         sender,
		Content:          "hello",
		LogicalTimestamp: ts,
		IdempotencyKey:   uuid.NewString(),
		Status:           chat.StatusPending,
		Type:             chat.TypeText,
		CreatedAt:        f.clock.Now(),
	}
	require.NoError(t, f.messages.StoreMessage(message))
	return message
}
