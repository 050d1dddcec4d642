package services

import (
	"context"
	"errors"
	"polling_system/internal/db/models"
	"polling_system/internal/db/repositories"
	mock_repositories "polling_system/internal/db/repositories/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type votingMocks struct {
	questions *mock_repositories.MockQuestionRepository
	choices   *mock_repositories.MockChoiceRepository
	votes     *mock_repositories.MockVoteRepository
}

func newTestVotingService(ctrl *gomock.Controller, now time.Time) (VotingService, votingMocks) {
	mocks := votingMocks{
		questions: mock_repositories.NewMockQuestionRepository(ctrl),
		choices:   mock_repositories.NewMockChoiceRepository(ctrl),
		votes:     mock_repositories.NewMockVoteRepository(ctrl),
	}

	service := NewVotingService(mocks.questions, mocks.choices, mocks.votes, zap.NewNop().Sugar())
	service.(*votingService).now = func() time.Time { return now }

	return service, mocks
}

var votingNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestVote_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _ := newTestVotingService(ctrl, votingNow)

	err := service.Vote(context.Background(), nil, 1, 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVote_QuestionNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mocks := newTestVotingService(ctrl, votingNow)

	mocks.questions.EXPECT().GetOne(gomock.Any(), int64(1)).Return(nil, repositories.ErrNotFound)

	err := service.Vote(context.Background(), &models.User{ID: 5}, 1, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVote_ChoiceNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mocks := newTestVotingService(ctrl, votingNow)

	mocks.questions.EXPECT().GetOne(gomock.Any(), int64(1)).Return(&models.Question{ID: 1}, nil)
	mocks.choices.EXPECT().GetOne(gomock.Any(), int64(9)).Return(nil, repositories.ErrNotFound)

	err := service.Vote(context.Background(), &models.User{ID: 5}, 1, 9)
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestVote_ChoiceOfAnotherQuestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mocks := newTestVotingService(ctrl, votingNow)

	mocks.questions.EXPECT().GetOne(gomock.Any(), int64(1)).Return(&models.Question{ID: 1}, nil)
	mocks.choices.EXPECT().GetOne(gomock.Any(), int64(3)).Return(&models.Choice{ID: 3, QuestionID: 2}, nil)

	err := service.Vote(context.Background(), &models.User{ID: 5}, 1, 3)
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestVote_PollClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mocks := newTestVotingService(ctrl, votingNow)

	endDate := votingNow.Add(-time.Second)
	mocks.questions.EXPECT().GetOne(gomock.Any(), int64(1)).Return(&models.Question{ID: 1, EndDate: &endDate}, nil)
	mocks.choices.EXPECT().GetOne(gomock.Any(), int64(2)).Return(&models.Choice{ID: 2, QuestionID: 1}, nil)

	err := service.Vote(context.Background(), &models.User{ID: 5}, 1, 2)
	assert.ErrorIs(t, err, ErrPollClosed)
}

func TestVote_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mocks := newTestVotingService(ctrl, votingNow)

	endDate := votingNow.Add(time.Hour)
	mocks.questions.EXPECT().GetOne(gomock.Any(), int64(1)).Return(&models.Question{ID: 1, EndDate: &endDate}, nil)
	mocks.choices.EXPECT().GetOne(gomock.Any(), int64(2)).Return(&models.Choice{ID: 2, QuestionID: 1}, nil)
	mocks.votes.EXPECT().
		Cast(gomock.Any(), &models.Vote{UserID: 5, QuestionID: 1, ChoiceID: 2}).
		Return(&models.Vote{ID: 100, UserID: 5, QuestionID: 1, ChoiceID: 2}, nil).
		Times(1)

	err := service.Vote(context.Background(), &models.User{ID: 5}, 1, 2)
	assert.NoError(t, err)
}

func TestVote_SecondVoteIsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mocks := newTestVotingService(ctrl, votingNow)

	mocks.questions.EXPECT().GetOne(gomock.Any(), int64(1)).Return(&models.Question{ID: 1}, nil).Times(2)
	mocks.choices.EXPECT().GetOne(gomock.Any(), int64(2)).Return(&models.Choice{ID: 2, QuestionID: 1}, nil).Times(2)

	gomock.InOrder(
		mocks.votes.EXPECT().Cast(gomock.Any(), gomock.Any()).Return(&models.Vote{ID: 1}, nil),
		mocks.votes.EXPECT().Cast(gomock.Any(), gomock.Any()).Return(nil, repositories.ErrDuplicate),
	)

	user := &models.User{ID: 5}
	require.NoError(t, service.Vote(context.Background(), user, 1, 2))

	err := service.Vote(context.Background(), user, 1, 2)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
}

func TestVote_ChoiceRemovedDuringVote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mocks := newTestVotingService(ctrl, votingNow)

	mocks.questions.EXPECT().GetOne(gomock.Any(), int64(1)).Return(&models.Question{ID: 1}, nil)
	mocks.choices.EXPECT().GetOne(gomock.Any(), int64(2)).Return(&models.Choice{ID: 2, QuestionID: 1}, nil)
	mocks.votes.EXPECT().Cast(gomock.Any(), gomock.Any()).Return(nil, repositories.ErrNotFound)

	err := service.Vote(context.Background(), &models.User{ID: 5}, 1, 2)
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestVote_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mocks := newTestVotingService(ctrl, votingNow)

	dbErr := errors.New("connection reset")
	mocks.questions.EXPECT().GetOne(gomock.Any(), int64(1)).Return(&models.Question{ID: 1}, nil)
	mocks.choices.EXPECT().GetOne(gomock.Any(), int64(2)).Return(&models.Choice{ID: 2, QuestionID: 1}, nil)
	mocks.votes.EXPECT().Cast(gomock.Any(), gomock.Any()).Return(nil, dbErr)

	err := service.Vote(context.Background(), &models.User{ID: 5}, 1, 2)
	assert.ErrorIs(t, err, dbErr)
}

func TestUserVote_NoVote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mocks := newTestVotingService(ctrl, votingNow)

	mocks.votes.EXPECT().GetOneByUserAndQuestion(gomock.Any(), int64(5), int64(1)).Return(nil, repositories.ErrNotFound)

	vote, err := service.UserVote(context.Background(), &models.User{ID: 5}, 1)
	require.NoError(t, err)
	assert.Nil(t, vote)
}

func TestUserVote_Anonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _ := newTestVotingService(ctrl, votingNow)

	vote, err := service.UserVote(context.Background(), nil, 1)
	require.NoError(t, err)
	assert.Nil(t, vote)
}

func TestUserVote_Found(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mocks := newTestVotingService(ctrl, votingNow)

	expected := &models.Vote{ID: 1, UserID: 5, QuestionID: 1, ChoiceID: 2}
	mocks.votes.EXPECT().GetOneByUserAndQuestion(gomock.Any(), int64(5), int64(1)).Return(expected, nil)

	vote, err := service.UserVote(context.Background(), &models.User{ID: 5}, 1)
	require.NoError(t, err)
	assert.Equal(t, expected, vote)
}
