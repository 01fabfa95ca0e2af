package services

import (
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"campus-chat/mocks"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestParticipantService_ConcurrentEnsureCreatesOneMember(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "r1")
	req.NoError(f.users.SaveUser(chat.User{ID: "u9", Name: "Nina"}))
	service := NewParticipantService(f.log, f.participants, f.rooms, f.users, f.clock)

	const callers = 8
	results := make([]chat.Participant, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = service.EnsureParticipant(ctx, "u9", "r1")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		req.NoError(errs[i])
		req.Equal(chat.RoleMember, results[i].Role)
	}
	members, err := service.Participants(ctx, "r1")
	req.NoError(err)
	req.Equal([]string{"u9"}, members)
}

func TestParticipantService_UnknownRoomOrUser(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "r1")
	service := NewParticipantService(f.log, f.participants, f.rooms, f.users, f.clock)

	_, err := service.EnsureParticipant(ctx, "ghost", "r1")
	req.ErrorIs(err, errors.ErrUserNotFound)

	req.NoError(f.users.SaveUser(chat.User{ID: "u1"}))
	_, err = service.EnsureParticipant(ctx, "u1", "nowhere")
	req.ErrorIs(err, errors.ErrRoomNotFound)

	_, err = service.EnsureParticipant(ctx, "", "r1")
	req.ErrorIs(err, errors.ErrValidation)
}

func TestParticipantService_RaceLoserReturnsWinnerRecord(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t)
	participants := mocks.NewMockIParticipantRepository(ctrl)
	rooms := mocks.NewMockIRoomRepository(ctrl)
	users := mocks.NewMockIUserRepository(ctrl)
	service := NewParticipantService(f.log, participants, rooms, users, f.clock)

	winner := chat.Participant{Room: "r1", UserID: "u1", Role: chat.RoleModerator, JoinedAt: epoch}

	rooms.EXPECT().GetRoom(chat.RoomID("r1")).Return(chat.Room{ID: "r1"}, nil)
	users.EXPECT().GetUser("u1").Return(chat.User{ID: "u1"}, nil)
	gomock.InOrder(
		participants.EXPECT().GetParticipant(chat.RoomID("r1"), "u1").Return(chat.Participant{}, errors.ErrParticipantNotFound),
		participants.EXPECT().CreateParticipant(gomock.Any()).Return(errors.ErrDuplicateParticipant),
		participants.EXPECT().GetParticipant(chat.RoomID("r1"), "u1").Return(winner, nil),
	)

	participant, err := service.EnsureParticipant(context.Background(), "u1", "r1")
	req.NoError(err)
	req.Equal(winner, participant)
}
