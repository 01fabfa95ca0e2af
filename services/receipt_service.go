//go:generate go run go.uber.org/mock/mockgen -source=receipt_service.go -destination=../mocks/mock_receipt_service.go -package=mocks
package services

import (
	"campus-chat/contract"
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"campus-chat/observability"
	"campus-chat/repositories"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type IReceiptService interface {
	MarkRead(ctx context.Context, messageID uuid.UUID, room chat.RoomID, userID string) (chat.ReadReceipt, bool, error)
	MarkMultipleRead(ctx context.Context, messageIDs []uuid.UUID, room chat.RoomID, userID string) []chat.MarkedReceipt
	Receipts(ctx context.Context, messageID uuid.UUID) ([]chat.ReadReceipt, error)
	UnreadCount(ctx context.Context, room chat.RoomID, userID string) (int, error)
}

type ReceiptService struct {
	log          *slog.Logger
	messages     repositories.IMessageRepository
	receipts     repositories.IReceiptRepository
	participants repositories.IParticipantRepository
	scheduler    contract.Scheduler
}

func NewReceiptService(log *slog.Logger,
	messages repositories.IMessageRepository,
	receipts repositories.IReceiptRepository,
	participants repositories.IParticipantRepository,
	scheduler contract.Scheduler) *ReceiptService {
	return &ReceiptService{
		log:          log,
		messages:     messages,
		receipts:     receipts,
		participants: participants,
		scheduler:    scheduler,
	}
}

// MarkRead records that userID read the message and reports whether this
// call created the receipt. Repeated calls return the first receipt unchanged.
// Once every current participant of the room holds a receipt the message is
// promoted to READ; participants who joined later count too. A failed
// promotion never fails the call and is attempted again on the next mark.
func (s *ReceiptService) MarkRead(_ context.Context, messageID uuid.UUID, room chat.RoomID, userID string) (chat.ReadReceipt, bool, error) {
	message, err := s.messages.GetMessage(messageID)
	if err != nil {
		return chat.ReadReceipt{}, false, err
	}
	if message.Room != room {
		return chat.ReadReceipt{}, false, errors.ErrMessageNotFound
	}

	existing, err := s.receipts.GetReceipt(messageID, userID)
	if err == nil {
		s.settle(message)
		return existing, false, nil
	}
	if !errors.Is(err, errors.ErrReceiptNotFound) {
		return chat.ReadReceipt{}, false, fmt.Errorf("get receipt: %w", err)
	}

	receipt := chat.ReadReceipt{
		MessageID: messageID,
		Room:      room,
		UserID:    userID,
		ReadAt:    s.scheduler.Now(),
	}
	switch err := s.receipts.CreateReceipt(receipt); {
	case errors.Is(err, errors.ErrDuplicateReceipt):
		existing, err := s.receipts.GetReceipt(messageID, userID)
		if err != nil {
			return chat.ReadReceipt{}, false, err
		}
		s.settle(message)
		return existing, false, nil
	case err != nil:
		return chat.ReadReceipt{}, false, fmt.Errorf("create receipt: %w", err)
	}

	if err := s.participants.TouchLastRead(room, userID, receipt.ReadAt); err != nil {
		s.log.Warn("Unable to touch last read", "room", room, "user", userID, "error", err)
	}
	s.settle(message)
	return receipt, true, nil
}

// MarkMultipleRead is best effort: failing ids are logged and skipped.
func (s *ReceiptService) MarkMultipleRead(ctx context.Context, messageIDs []uuid.UUID, room chat.RoomID, userID string) []chat.MarkedReceipt {
	results := make([]chat.MarkedReceipt, 0, len(messageIDs))
	for _, id := range messageIDs {
		receipt, created, err := s.MarkRead(ctx, id, room, userID)
		if err != nil {
			s.log.Debug("Skipping unreadable message", "message", id, "room", room, "error", err)
			continue
		}
		results = append(results, chat.MarkedReceipt{Receipt: receipt, Created: created})
	}
	return results
}

func (s *ReceiptService) Receipts(_ context.Context, messageID uuid.UUID) ([]chat.ReadReceipt, error) {
	return s.receipts.ListReceipts(messageID)
}

// UnreadCount counts messages of others created after the user's last read.
// A user who is not a participant has nothing unread.
func (s *ReceiptService) UnreadCount(_ context.Context, room chat.RoomID, userID string) (int, error) {
	participant, err := s.participants.GetParticipant(room, userID)
	if errors.Is(err, errors.ErrParticipantNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return s.messages.CountUnread(room, userID, participant.LastReadAt)
}

func (s *ReceiptService) settle(message chat.Message) {
	if message.Status == chat.StatusRead {
		return
	}
	if err := s.promote(message); err != nil {
		s.log.Warn("Read promotion deferred", "message", message.ID, "room", message.Room, "error", err)
	}
}

func (s *ReceiptService) promote(message chat.Message) error {
	participants, err := s.participants.CountParticipants(message.Room)
	if err != nil {
		return fmt.Errorf("count participants: %w", err)
	}
	receipts, err := s.receipts.CountReceipts(message.ID)
	if err != nil {
		return fmt.Errorf("count receipts: %w", err)
	}
	if participants == 0 || receipts < participants {
		return nil
	}
	promoted, err := s.messages.UpdateStatus(message.ID, chat.StatusRead)
	if err != nil {
		return fmt.Errorf("promote to read: %w", err)
	}
	if promoted {
		observability.ReadPromotions.Inc()
		s.log.Debug("Message read by every participant", "message", message.ID, "room", message.Room)
	}
	return nil
}
