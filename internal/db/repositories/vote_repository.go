//go:generate mockgen -source=vote_repository.go -destination=mocks/vote_repository.go -package=mock_repositories

package repositories

import (
	"context"
	"polling_system/internal/db/models"

	"github.com/go-pg/pg/v10"
)

type voteRepository struct {
	repository
}

type VoteRepository interface {
	Cast(ctx context.Context, request *models.Vote) (*models.Vote, error)
	GetOneByUserAndQuestion(ctx context.Context, userID, questionID int64) (*models.Vote, error)
}

func NewVoteRepository(db *pg.DB) VoteRepository {
	return &voteRepository{
		repository: repository{
			db: db,
		},
	}
}

// Cast inserts the vote and increments the chosen choice counter in one
// transaction. A second vote of the same user on the same question violates
// votes_user_id_question_id_key and is reported as ErrDuplicate. A choice that
// does not belong to the question is reported as ErrNotFound.
func (r *voteRepository) Cast(ctx context.Context, request *models.Vote) (*models.Vote, error) {
	err := r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		if _, err := tx.Model(request).Insert(); err != nil {
			return err
		}

		result, err := tx.Exec(`
			UPDATE choices SET votes = votes + 1
			WHERE id = ? AND question_id = ?
		`, request.ChoiceID, request.QuestionID)
		if err != nil {
			return err
		}

		if result.RowsAffected() != 1 {
			return pg.ErrNoRows
		}

		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}

	return request, nil
}

func (r *voteRepository) GetOneByUserAndQuestion(ctx context.Context, userID, questionID int64) (*models.Vote, error) {
	vote := &models.Vote{}

	err := r.db.ModelContext(ctx, vote).
		Where("user_id = ?", userID).
		Where("question_id = ?", questionID).
		Select()
	if err != nil {
		return nil, translateError(err)
	}

	return vote, nil
}
