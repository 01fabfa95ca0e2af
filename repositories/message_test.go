package repositories

import (
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func newMessage(room chat.RoomID, author string, ts int64, at time.Time) chat.Message {
	return chat.Message{
		ID:               uuid.New(),
		Room:             room,
		SenderID:         author,
		Content:          fmt.Sprintf("message %d", ts),
		LogicalTimestamp: ts,
		IdempotencyKey:   uuid.NewString(),
		Status:           chat.StatusPending,
		Type:             chat.TypeText,
		CreatedAt:        at,
	}
}

func Test_Store_And_Get_Messages_Sorted_By_Logical_Timestamp(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	at := time.Now().UTC()

	// Given messages inserted out of order
	for _, ts := range []int64{8, 6, 7} {
		req.NoError(repository.StoreMessage(newMessage("r1", "Alice", ts, at)))
	}

	// When fetching the history
	messages, err := repository.GetMessages("r1", 50, 0)
	req.NoError(err)

	// Then it comes back in ascending logical order
	req.Equal([]int64{6, 7, 8}, lo.Map(messages, func(m chat.Message, _ int) int64 {
		return m.LogicalTimestamp
	}))
}

func Test_Equal_Logical_Timestamps_Are_Ordered_By_Creation_Time(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	at := time.Now().UTC()

	later := newMessage("r1", "Bob", 3, at.Add(time.Second))
	earlier := newMessage("r1", "Alice", 3, at)
	req.NoError(repository.StoreMessage(later))
	req.NoError(repository.StoreMessage(earlier))

	messages, err := repository.GetMessages("r1", 50, 0)
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal(earlier.ID, messages[0].ID)
	req.Equal(later.ID, messages[1].ID)
}

func Test_GetMessages_Paginates_With_Limit_And_Skip(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	at := time.Now().UTC()
	for ts := int64(1); ts <= 5; ts++ {
		req.NoError(repository.StoreMessage(newMessage("r1", "Alice", ts, at)))
	}

	page, err := repository.GetMessages("r1", 2, 2)
	req.NoError(err)
	req.Len(page, 2)
	req.Equal(int64(3), page[0].LogicalTimestamp)
	req.Equal(int64(4), page[1].LogicalTimestamp)
}

func Test_Rooms_Sharing_A_Prefix_Do_Not_Mix(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	at := time.Now().UTC()
	req.NoError(repository.StoreMessage(newMessage("r1", "Alice", 1, at)))
	req.NoError(repository.StoreMessage(newMessage("r1:x", "Alice", 1, at)))

	messages, err := repository.GetMessages("r1", 50, 0)
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal(chat.RoomID("r1"), messages[0].Room)
}

func Test_StoreMessage_Rejects_Reused_Idempotency_Key(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	first := newMessage("r1", "Alice", 1, time.Now().UTC())
	second := newMessage("r1", "Alice", 2, time.Now().UTC())
	second.IdempotencyKey = first.IdempotencyKey

	req.NoError(repository.StoreMessage(first))
	err := repository.StoreMessage(second)
	req.ErrorIs(err, errors.ErrDuplicateIdempotencyKey)
	req.ErrorIs(err, errors.ErrDuplicate)

	stored, err := repository.GetByIdempotencyKey(first.IdempotencyKey)
	req.NoError(err)
	req.Equal(first.ID, stored.ID)

	messages, err := repository.GetMessages("r1", 50, 0)
	req.NoError(err)
	req.Len(messages, 1)
}

func Test_Concurrent_Stores_With_Same_Key_Keep_One_Message(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	key := uuid.NewString()

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := newMessage("r1", "Alice", int64(i+1), time.Now().UTC())
			m.IdempotencyKey = key
			results <- repository.StoreMessage(m)
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		req.ErrorIs(err, errors.ErrDuplicate)
	}
	req.Equal(1, succeeded)

	messages, err := repository.GetMessages("r1", 50, 0)
	req.NoError(err)
	req.Len(messages, 1)
}

func Test_UpdateStatus_Only_Moves_Forward(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	m := newMessage("r1", "Alice", 1, time.Now().UTC())
	req.NoError(repository.StoreMessage(m))

	applied, err := repository.UpdateStatus(m.ID, chat.StatusRead)
	req.NoError(err)
	req.True(applied)

	applied, err = repository.UpdateStatus(m.ID, chat.StatusDelivered)
	req.NoError(err)
	req.False(applied)

	stored, err := repository.GetMessage(m.ID)
	req.NoError(err)
	req.Equal(chat.StatusRead, stored.Status)
}

func Test_Message_Round_Trips_Attachment_And_Reply(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	m := newMessage("r1", "Alice", 1, time.Now().UTC())
	m.Type = chat.TypeImage
	m.Attachment = &chat.Attachment{URL: "https://cdn/x.png", Name: "x.png", Size: 42, MimeType: "image/png"}
	m.ReplyTo = &chat.ReplyRef{MessageID: uuid.New(), SenderName: "Bob", Snippet: "hi"}
	req.NoError(repository.StoreMessage(m))

	stored, err := repository.GetMessage(m.ID)
	req.NoError(err)
	req.Equal(m, stored)
}

func Test_CountUnread_Skips_Own_And_Older_Messages(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	at := time.Now().UTC()
	req.NoError(repository.StoreMessage(newMessage("r1", "Bob", 1, at.Add(-time.Minute))))
	req.NoError(repository.StoreMessage(newMessage("r1", "Bob", 2, at.Add(time.Minute))))
	req.NoError(repository.StoreMessage(newMessage("r1", "Alice", 3, at.Add(time.Minute))))

	count, err := repository.CountUnread("r1", "Alice", at)
	req.NoError(err)
	req.Equal(1, count)
}

func Test_GetMessage_Unknown_Is_Not_Found(t *testing.T) {
	repository := NewMessageRepository(openDB(t), slog.Default())
	_, err := repository.GetMessage(uuid.New())
	require.ErrorIs(t, err, errors.ErrNotFound)
}
