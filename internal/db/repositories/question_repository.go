//go:generate mockgen -source=question_repository.go -destination=mocks/question_repository.go -package=mock_repositories

package repositories

import (
	"context"
	"polling_system/internal/db/models"
	"time"

	"github.com/go-pg/pg/v10"
)

type questionRepository struct {
	repository
}

type QuestionRepository interface {
	Create(ctx context.Context, request *models.Question) (*models.Question, error)
	GetOne(ctx context.Context, questionID int64) (*models.Question, error)
	GetManyActive(ctx context.Context, now time.Time) ([]*models.Question, error)
	GetManyClosedUnannounced(ctx context.Context, now time.Time) ([]*models.Question, error)
}

func NewQuestionRepository(db *pg.DB) QuestionRepository {
	return &questionRepository{
		repository: repository{
			db: db,
		},
	}
}

func orderChoices(q *pg.Query) (*pg.Query, error) {
	return q.OrderExpr("choice.id ASC"), nil
}

// Create inserts the question and its choices in one transaction.
func (r *questionRepository) Create(ctx context.Context, request *models.Question) (*models.Question, error) {
	err := r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		if _, err := tx.Model(request).Insert(); err != nil {
			return err
		}

		for _, choice := range request.Choices {
			choice.QuestionID = request.ID
			if _, err := tx.Model(choice).Insert(); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}

	return r.GetOne(ctx, request.ID)
}

func (r *questionRepository) GetOne(ctx context.Context, questionID int64) (*models.Question, error) {
	question := &models.Question{}

	err := r.db.ModelContext(ctx, question).
		Relation("Choices", orderChoices).
		Where("id = ?", questionID).
		Select()
	if err != nil {
		return nil, translateError(err)
	}

	return question, nil
}

func (r *questionRepository) GetManyActive(ctx context.Context, now time.Time) ([]*models.Question, error) {
	questions := make([]*models.Question, 0)

	err := r.db.ModelContext(ctx, &questions).
		Relation("Choices", orderChoices).
		WhereGroup(func(q *pg.Query) (*pg.Query, error) {
			q = q.WhereOr("end_date IS NULL").
				WhereOr("end_date >= ?", now)
			return q, nil
		}).
		OrderExpr("pub_date DESC").
		Select()

	return questions, translateError(err)
}

func (r *questionRepository) GetManyClosedUnannounced(ctx context.Context, now time.Time) ([]*models.Question, error) {
	questions := make([]*models.Question, 0)

	err := r.db.ModelContext(ctx, &questions).
		Relation("Choices", orderChoices).
		Where("end_date < ?", now).
		Where("NOT EXISTS (SELECT 1 FROM announcements AS a WHERE a.question_id = question.id)").
		OrderExpr("end_date ASC").
		Select()

	return questions, translateError(err)
}
