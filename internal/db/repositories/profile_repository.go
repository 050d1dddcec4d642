//go:generate mockgen -source=profile_repository.go -destination=mocks/profile_repository.go -package=mock_repositories

package repositories

import (
	"context"
	"polling_system/internal/db/models"

	"github.com/go-pg/pg/v10"
)

type profileRepository struct {
	repository
}

type ProfileRepository interface {
	GetOneByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}

func NewProfileRepository(db *pg.DB) ProfileRepository {
	return &profileRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *profileRepository) GetOneByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	profile := &models.Profile{}

	err := r.db.ModelContext(ctx, profile).
		Where("user_id = ?", userID).
		Select()
	if err != nil {
		return nil, translateError(err)
	}

	return profile, nil
}
