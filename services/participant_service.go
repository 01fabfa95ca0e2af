//go:generate go run go.uber.org/mock/mockgen -source=participant_service.go -destination=../mocks/mock_participant_service.go -package=mocks
package services

import (
	"campus-chat/contract"
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"campus-chat/repositories"
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

type IParticipantService interface {
	EnsureParticipant(ctx context.Context, userID string, room chat.RoomID) (chat.Participant, error)
	Participants(ctx context.Context, room chat.RoomID) ([]string, error)
}

// ParticipantService gates every room-scoped operation on membership.
// It is the only writer of participant records.
type ParticipantService struct {
	log          *slog.Logger
	participants repositories.IParticipantRepository
	rooms        repositories.IRoomRepository
	users        repositories.IUserRepository
	scheduler    contract.Scheduler
}

func NewParticipantService(log *slog.Logger,
	participants repositories.IParticipantRepository,
	rooms repositories.IRoomRepository,
	users repositories.IUserRepository,
	scheduler contract.Scheduler) *ParticipantService {
	return &ParticipantService{
		log:          log,
		participants: participants,
		rooms:        rooms,
		users:        users,
		scheduler:    scheduler,
	}
}

// EnsureParticipant returns the membership of userID in room, creating it
// with the member role when absent. When two callers race on the creation
// the loser re-reads and returns the winner's record, so the call is
// idempotent and never fails for an existing member.
func (s *ParticipantService) EnsureParticipant(_ context.Context, userID string, room chat.RoomID) (chat.Participant, error) {
	if userID == "" || room == "" {
		return chat.Participant{}, errors.Validation(fmt.Errorf("userId and roomId are required"))
	}
	if _, err := s.rooms.GetRoom(room); err != nil {
		return chat.Participant{}, err
	}
	if _, err := s.users.GetUser(userID); err != nil {
		return chat.Participant{}, err
	}

	participant, err := s.participants.GetParticipant(room, userID)
	if err == nil {
		return participant, nil
	}
	if !errors.Is(err, errors.ErrParticipantNotFound) {
		return chat.Participant{}, fmt.Errorf("get participant: %w", err)
	}

	now := s.scheduler.Now()
	participant = chat.Participant{
		Room:       room,
		UserID:     userID,
		Role:       chat.RoleMember,
		JoinedAt:   now,
		LastReadAt: now,
	}
	err = s.participants.CreateParticipant(participant)
	switch {
	case err == nil:
		s.log.Debug("Participant created", "room", room, "user", userID)
		return participant, nil
	case errors.Is(err, errors.ErrDuplicateParticipant):
		s.log.Debug("Participant creation lost a race, re-reading", "room", room, "user", userID)
		return s.participants.GetParticipant(room, userID)
	default:
		return chat.Participant{}, fmt.Errorf("create participant: %w", err)
	}
}

// Participants lists the user ids that are members of room.
func (s *ParticipantService) Participants(_ context.Context, room chat.RoomID) ([]string, error) {
	participants, err := s.participants.ListParticipants(room)
	if err != nil {
		return nil, err
	}
	return lo.Map(participants, func(p chat.Participant, _ int) string {
		return p.UserID
	}), nil
}
