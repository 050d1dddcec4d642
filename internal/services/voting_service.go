//go:generate mockgen -source=voting_service.go -destination=mocks/voting_service.go -package=mock_services

package services

import (
	"context"
	"errors"
	"fmt"
	"polling_system/internal/db/models"
	"polling_system/internal/db/repositories"
	"time"

	"go.uber.org/zap"
)

type VotingService interface {
	Vote(ctx context.Context, user *models.User, questionID, choiceID int64) error
	UserVote(ctx context.Context, user *models.User, questionID int64) (*models.Vote, error)
}

type votingService struct {
	questionRepository repositories.QuestionRepository
	choiceRepository   repositories.ChoiceRepository
	voteRepository     repositories.VoteRepository
	now                func() time.Time
	logger             *zap.SugaredLogger
}

func NewVotingService(
	questionRepository repositories.QuestionRepository,
	choiceRepository repositories.ChoiceRepository,
	voteRepository repositories.VoteRepository,
	logger *zap.SugaredLogger,
) VotingService {
	return &votingService{
		questionRepository: questionRepository,
		choiceRepository:   choiceRepository,
		voteRepository:     voteRepository,
		now:                time.Now,
		logger:             logger,
	}
}

// Vote records the user's choice for the question and increments the choice
// counter. Checks run in order: question exists, choice belongs to the
// question, poll is still active. A repeated vote is rejected by the
// (user_id, question_id) unique constraint and reported as ErrAlreadyVoted.
func (s *votingService) Vote(ctx context.Context, user *models.User, questionID, choiceID int64) error {
	if user == nil {
		return ErrUnauthenticated
	}

	question, err := s.questionRepository.GetOne(ctx, questionID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to get question: %w", err)
	}

	choice, err := s.choiceRepository.GetOne(ctx, choiceID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrInvalidChoice
	} else if err != nil {
		return fmt.Errorf("failed to get choice: %w", err)
	}

	if choice.QuestionID != question.ID {
		return ErrInvalidChoice
	}

	if !question.IsActive(s.now()) {
		return ErrPollClosed
	}

	_, err = s.voteRepository.Cast(ctx, &models.Vote{
		UserID:     user.ID,
		QuestionID: question.ID,
		ChoiceID:   choice.ID,
	})
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return ErrAlreadyVoted
	case errors.Is(err, repositories.ErrNotFound):
		return ErrInvalidChoice
	case err != nil:
		return fmt.Errorf("failed to cast vote: %w", err)
	}

	s.logger.Infow("vote cast", "userID", user.ID, "questionID", question.ID, "choiceID", choice.ID)

	return nil
}

// UserVote returns the vote the user has cast on the question, or nil when
// there is none.
func (s *votingService) UserVote(ctx context.Context, user *models.User, questionID int64) (*models.Vote, error) {
	if user == nil {
		return nil, nil
	}

	vote, err := s.voteRepository.GetOneByUserAndQuestion(ctx, user.ID, questionID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	return vote, nil
}
