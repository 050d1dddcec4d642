package announcer

import (
	"context"
	"fmt"
	"polling_system/internal"
	"polling_system/internal/db/models"
	"polling_system/internal/db/repositories"
	"polling_system/internal/services"
	"time"

	"go.uber.org/zap"
)

// Announcer publishes the results of polls whose end date has passed. A poll
// is recorded as announced once at least one notifier accepted it, so polls
// that no notifier could deliver are retried on the next run.
type Announcer struct {
	questionRepository     repositories.QuestionRepository
	announcementRepository repositories.AnnouncementRepository
	notifiers              []Notifier
	now                    func() time.Time
	logger                 *zap.SugaredLogger
}

func New(
	questionRepository repositories.QuestionRepository,
	announcementRepository repositories.AnnouncementRepository,
	notifiers []Notifier,
	logger *zap.SugaredLogger,
) *Announcer {
	return &Announcer{
		questionRepository:     questionRepository,
		announcementRepository: announcementRepository,
		notifiers:              notifiers,
		now:                    time.Now,
		logger:                 logger,
	}
}

func (a *Announcer) Run(ctx context.Context) error {
	if len(a.notifiers) == 0 {
		a.logger.Warn("no notifiers configured, skipping announcements")
		return nil
	}

	now := a.now()

	questions, err := a.questionRepository.GetManyClosedUnannounced(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to get closed questions: %w", err)
	}

	if len(questions) == 0 {
		a.logger.Info("no results to announce")
		return nil
	}

	for _, question := range questions {
		a.announce(ctx, question, now)
	}

	return nil
}

func (a *Announcer) announce(ctx context.Context, question *models.Question, now time.Time) {
	text := internal.FormatResults(question, services.CalculateTally(question))

	sent := 0
	for _, notifier := range a.notifiers {
		if err := notifier.Notify(ctx, text); err != nil {
			a.logger.Errorw("failed to send results", "notifier", notifier.Name(), "questionID", question.ID, "error", err)
			continue
		}
		sent++
	}

	if sent == 0 {
		a.logger.Warnw("results not delivered, will retry", "questionID", question.ID)
		return
	}

	err := a.announcementRepository.Create(ctx, &models.Announcement{
		QuestionID:  question.ID,
		AnnouncedAt: now,
	})
	if err != nil {
		a.logger.Errorw("failed to record announcement", "questionID", question.ID, "error", err)
		return
	}

	a.logger.Infow("results announced", "questionID", question.ID, "notifiers", sent)
}
