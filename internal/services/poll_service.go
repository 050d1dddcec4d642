//go:generate mockgen -source=poll_service.go -destination=mocks/poll_service.go -package=mock_services

package services

import (
	"context"
	"errors"
	"fmt"
	"polling_system/internal/db/models"
	"polling_system/internal/db/repositories"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const maxTextLength = 200

type NewQuestion struct {
	QuestionText string
	Description  string
	EndDate      *time.Time
	Image        string
	Choices      []string
}

type PollService interface {
	Create(ctx context.Context, owner *models.User, request NewQuestion) (*models.Question, error)
	Get(ctx context.Context, questionID int64) (*models.Question, error)
	ListActive(ctx context.Context, now time.Time) ([]*models.Question, error)
}

type pollService struct {
	questionRepository repositories.QuestionRepository
	logger             *zap.SugaredLogger
}

func NewPollService(questionRepository repositories.QuestionRepository, logger *zap.SugaredLogger) PollService {
	return &pollService{
		questionRepository: questionRepository,
		logger:             logger,
	}
}

// IsActive reports whether question accepts votes at now. Status is never
// persisted, a poll closes the moment now passes its end date.
func IsActive(question *models.Question, now time.Time) bool {
	return question.IsActive(now)
}

func (s *pollService) Create(ctx context.Context, owner *models.User, request NewQuestion) (*models.Question, error) {
	if owner == nil {
		return nil, ErrUnauthenticated
	}

	question, err := buildQuestion(owner, request)
	if err != nil {
		return nil, err
	}

	question, err = s.questionRepository.Create(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.Infow("question created", "questionID", question.ID, "authorID", owner.ID, "choices", len(question.Choices))

	return question, nil
}

func buildQuestion(owner *models.User, request NewQuestion) (*models.Question, error) {
	text := strings.TrimSpace(request.QuestionText)
	if text == "" {
		return nil, ErrQuestionTextRequired
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		return nil, ErrQuestionTextTooLong
	}

	question := &models.Question{
		QuestionText: text,
		Description:  strings.TrimSpace(request.Description),
		EndDate:      request.EndDate,
		Image:        request.Image,
		AuthorID:     owner.ID,
	}

	for _, choiceText := range request.Choices {
		choiceText = strings.TrimSpace(choiceText)
		if choiceText == "" {
			continue
		}
		if utf8.RuneCountInString(choiceText) > maxTextLength {
			return nil, ErrChoiceTextTooLong
		}

		question.Choices = append(question.Choices, &models.Choice{ChoiceText: choiceText})
	}

	if len(question.Choices) == 0 {
		return nil, ErrNoChoices
	}

	return question, nil
}

func (s *pollService) Get(ctx context.Context, questionID int64) (*models.Question, error) {
	question, err := s.questionRepository.GetOne(ctx, questionID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return question, nil
}

func (s *pollService) ListActive(ctx context.Context, now time.Time) ([]*models.Question, error) {
	questions, err := s.questionRepository.GetManyActive(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get active questions: %w", err)
	}

	return questions, nil
}
