//go:generate mockgen -source=user_repository.go -destination=mocks/user_repository.go -package=mock_repositories

package repositories

import (
	"context"
	"polling_system/internal/db/models"

	"github.com/go-pg/pg/v10"
)

type userRepository struct {
	repository
}

type UserRepository interface {
	Create(ctx context.Context, request *models.User, profile *models.Profile) (*models.User, error)
	Update(ctx context.Context, request *models.User, profile *models.Profile) (*models.User, error)
	Delete(ctx context.Context, request *models.User) error
	GetOne(ctx context.Context, userID int64) (*models.User, error)
	GetOneByUsername(ctx context.Context, username string) (*models.User, error)
}

func NewUserRepository(db *pg.DB) UserRepository {
	return &userRepository{
		repository: repository{
			db: db,
		},
	}
}

// Create inserts the user together with its profile, so every user always has
// exactly one profile.
func (r *userRepository) Create(ctx context.Context, request *models.User, profile *models.Profile) (*models.User, error) {
	err := r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		if _, err := tx.Model(request).Insert(); err != nil {
			return err
		}

		profile.UserID = request.ID
		_, err := tx.Model(profile).Insert()
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}

	return r.GetOne(ctx, request.ID)
}

// Update writes username, email and password hash. A non-nil profile has its
// avatar written in the same transaction.
func (r *userRepository) Update(ctx context.Context, request *models.User, profile *models.Profile) (*models.User, error) {
	err := r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		_, err := tx.Model(request).
			Column("username", "email", "password_hash").
			WherePK().
			Update()
		if err != nil || profile == nil {
			return err
		}

		_, err = tx.Model(profile).
			Column("avatar").
			WherePK().
			Update()
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}

	return r.GetOne(ctx, request.ID)
}

// Delete removes the user. Choice counters of the votes that disappear with the
// user are decremented in the same transaction.
func (r *userRepository) Delete(ctx context.Context, request *models.User) error {
	err := r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		_, err := tx.Exec(`
			UPDATE choices SET votes = votes - 1
			WHERE id IN (SELECT choice_id FROM votes WHERE user_id = ?)
		`, request.ID)
		if err != nil {
			return err
		}

		_, err = tx.Model(request).WherePK().Delete()
		return err
	})

	return translateError(err)
}

func (r *userRepository) GetOne(ctx context.Context, userID int64) (*models.User, error) {
	user := &models.User{}

	err := r.db.ModelContext(ctx, user).
		Where("id = ?", userID).
		Select()
	if err != nil {
		return nil, translateError(err)
	}

	return user, nil
}

func (r *userRepository) GetOneByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}

	err := r.db.ModelContext(ctx, user).
		Where("username = ?", username).
		Select()
	if err != nil {
		return nil, translateError(err)
	}

	return user, nil
}
