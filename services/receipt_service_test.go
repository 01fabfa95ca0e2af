package services

import (
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"campus-chat/repositories"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestReceiptService_MarkReadIsIdempotent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "r1", "alice", "bob", "carol")
	service := NewReceiptService(f.log, f.messages, f.receipts, f.participants, f.clock)
	message := f.storeMessage(t, "r1", "alice", 1)

	first, created, err := service.MarkRead(ctx, message.ID, "r1", "bob")
	req.NoError(err)
	req.True(created)

	f.clock.Advance(time.Minute)
	second, created, err := service.MarkRead(ctx, message.ID, "r1", "bob")
	req.NoError(err)
	req.False(created)
	req.Equal(first, second)

	receipts, err := service.Receipts(ctx, message.ID)
	req.NoError(err)
	req.Len(receipts, 1)
}

func TestReceiptService_PromotesWhenEveryParticipantRead(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "r1", "alice", "bob")
	service := NewReceiptService(f.log, f.messages, f.receipts, f.participants, f.clock)
	message := f.storeMessage(t, "r1", "alice", 1)
	_, err := f.messages.UpdateStatus(message.ID, chat.StatusDelivered)
	req.NoError(err)

	_, _, err = service.MarkRead(ctx, message.ID, "r1", "bob")
	req.NoError(err)
	stored, err := f.messages.GetMessage(message.ID)
	req.NoError(err)
	req.Equal(chat.StatusDelivered, stored.Status)

	_, _, err = service.MarkRead(ctx, message.ID, "r1", "alice")
	req.NoError(err)
	stored, err = f.messages.GetMessage(message.ID)
	req.NoError(err)
	req.Equal(chat.StatusRead, stored.Status)
}

func TestReceiptService_LateJoinerKeepsMessageFromRead(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "r1", "alice", "bob")
	service := NewReceiptService(f.log, f.messages, f.receipts, f.participants, f.clock)
	message := f.storeMessage(t, "r1", "alice", 1)

	_, _, err := service.MarkRead(ctx, message.ID, "r1", "bob")
	req.NoError(err)
	f.seed(t, "r1", "dave")
	_, _, err = service.MarkRead(ctx, message.ID, "r1", "alice")
	req.NoError(err)

	stored, err := f.messages.GetMessage(message.ID)
	req.NoError(err)
	req.NotEqual(chat.StatusRead, stored.Status)
}

func TestReceiptService_MarkReadRejectsMessageOfAnotherRoom(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "r1", "alice")
	f.seed(t, "r2", "alice")
	service := NewReceiptService(f.log, f.messages, f.receipts, f.participants, f.clock)
	message := f.storeMessage(t, "r1", "alice", 1)

	_, _, err := service.MarkRead(ctx, message.ID, "r2", "alice")
	req.ErrorIs(err, errors.ErrNotFound)

	_, _, err = service.MarkRead(ctx, uuid.New(), "r1", "alice")
	req.ErrorIs(err, errors.ErrMessageNotFound)
}

func TestReceiptService_UnreadCountFollowsLastRead(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "r1", "alice", "bob")
	service := NewReceiptService(f.log, f.messages, f.receipts, f.participants, f.clock)

	f.clock.Advance(time.Second)
	first := f.storeMessage(t, "r1", "alice", 1)
	f.clock.Advance(time.Second)
	f.storeMessage(t, "r1", "bob", 2)
	f.clock.Advance(time.Second)
	third := f.storeMessage(t, "r1", "alice", 3)

	count, err := service.UnreadCount(ctx, "r1", "bob")
	req.NoError(err)
	req.Equal(2, count)

	f.clock.Advance(time.Second)
	marked := service.MarkMultipleRead(ctx, []uuid.UUID{first.ID, uuid.New(), third.ID}, "r1", "bob")
	req.Len(marked, 2)
	req.True(marked[0].Created)
	req.Equal(third.ID, marked[1].Receipt.MessageID)

	again := service.MarkMultipleRead(ctx, []uuid.UUID{first.ID}, "r1", "bob")
	req.Len(again, 1)
	req.False(again[0].Created)

	count, err = service.UnreadCount(ctx, "r1", "bob")
	req.NoError(err)
	req.Zero(count)

	count, err = service.UnreadCount(ctx, "r1", "mallory")
	req.NoError(err)
	req.Zero(count)
}

// flakyParticipants fails CountParticipants a given number of times.
type flakyParticipants struct {
	repositories.ParticipantRepository
	failures int
}

func (p *flakyParticipants) CountParticipants(room chat.RoomID) (int, error) {
	if p.failures > 0 {
		p.failures--
		return 0, fmt.Errorf("transient io")
	}
	return p.ParticipantRepository.CountParticipants(room)
}

func TestReceiptService_FailedPromotionIsRetriedOnNextMark(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "r1", "alice")
	participants := &flakyParticipants{ParticipantRepository: f.participants, failures: 1}
	service := NewReceiptService(f.log, f.messages, f.receipts, participants, f.clock)
	message := f.storeMessage(t, "r1", "alice", 1)

	// Given a promotion failing right after the receipt was stored
	receipt, created, err := service.MarkRead(ctx, message.ID, "r1", "alice")
	req.NoError(err)
	req.True(created)
	req.Equal("alice", receipt.UserID)
	stored, err := f.messages.GetMessage(message.ID)
	req.NoError(err)
	req.Equal(chat.StatusPending, stored.Status)

	// When the reader marks it again
	_, created, err = service.MarkRead(ctx, message.ID, "r1", "alice")
	req.NoError(err)
	req.False(created)

	// Then the message is promoted
	stored, err = f.messages.GetMessage(message.ID)
	req.NoError(err)
	req.Equal(chat.StatusRead, stored.Status)
}
