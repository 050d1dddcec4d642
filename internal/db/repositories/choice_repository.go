//go:generate mockgen -source=choice_repository.go -destination=mocks/choice_repository.go -package=mock_repositories

package repositories

import (
	"context"
	"polling_system/internal/db/models"

	"github.com/go-pg/pg/v10"
)

type choiceRepository struct {
	repository
}

type ChoiceRepository interface {
	GetOne(ctx context.Context, choiceID int64) (*models.Choice, error)
}

func NewChoiceRepository(db *pg.DB) ChoiceRepository {
	return &choiceRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *choiceRepository) GetOne(ctx context.Context, choiceID int64) (*models.Choice, error) {
	choice := &models.Choice{}

	err := r.db.ModelContext(ctx, choice).
		Where("id = ?", choiceID).
		Select()
	if err != nil {
		return nil, translateError(err)
	}

	return choice, nil
}
