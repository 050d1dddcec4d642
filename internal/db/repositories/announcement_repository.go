//go:generate mockgen -source=announcement_repository.go -destination=mocks/announcement_repository.go -package=mock_repositories

package repositories

import (
	"context"
	"polling_system/internal/db/models"

	"github.com/go-pg/pg/v10"
)

type announcementRepository struct {
	repository
}

type AnnouncementRepository interface {
	Create(ctx context.Context, request *models.Announcement) error
}

func NewAnnouncementRepository(db *pg.DB) AnnouncementRepository {
	return &announcementRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *announcementRepository) Create(ctx context.Context, request *models.Announcement) error {
	_, err := r.db.ModelContext(ctx, request).
		OnConflict("DO NOTHING").
		Insert()

	return translateError(err)
}
