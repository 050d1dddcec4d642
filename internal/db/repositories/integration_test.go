package repositories

import (
	"context"
	"os"
	"polling_system/configs"
	"polling_system/internal/db"
	"polling_system/internal/db/models"
	"strings"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestDB connects to DATABASE_URL, migrates it and empties every table.
// Without DATABASE_URL the test is skipped.
func newTestDB(t *testing.T) *pg.DB {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL is not set")
	}

	database, err := db.StartDB(configs.DB{
		URL:           url,
		MigrationsDir: "../../../migrations",
	}, zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`TRUNCATE users, profiles, questions, choices, votes, announcements RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return database
}

func createTestUser(t *testing.T, database *pg.DB, username string) *models.User {
	t.Helper()

	user, err := NewUserRepository(database).Create(context.Background(), &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}, &models.Profile{})
	require.NoError(t, err)

	return user
}

func createTestQuestion(t *testing.T, database *pg.DB, author *models.User, text string, pubDate time.Time, endDate *time.Time) *models.Question {
	t.Helper()

	question, err := NewQuestionRepository(database).Create(context.Background(), &models.Question{
		QuestionText: text,
		PubDate:      pubDate,
		EndDate:      endDate,
		AuthorID:     author.ID,
		Choices: []*models.Choice{
			{ChoiceText: text + " A"},
			{ChoiceText: text + " B"},
		},
	})
	require.NoError(t, err)
	require.Len(t, question.Choices, 2)

	return question
}

func choiceCounters(t *testing.T, database *pg.DB, questionID int64) []int64 {
	t.Helper()

	question, err := NewQuestionRepository(database).GetOne(context.Background(), questionID)
	require.NoError(t, err)

	counters := make([]int64, 0, len(question.Choices))
	for _, choice := range question.Choices {
		counters = append(counters, choice.Votes)
	}
	return counters
}

func voteCount(t *testing.T, database *pg.DB) int {
	t.Helper()

	count, err := database.Model((*models.Vote)(nil)).Count()
	require.NoError(t, err)
	return count
}

func TestVoteRepositoryCast_IncrementsOnlyChosenChoice(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, database, "alice")
	question := createTestQuestion(t, database, alice, "Tea or coffee?", time.Now(), nil)

	_, err := NewVoteRepository(database).Cast(ctx, &models.Vote{
		UserID:     alice.ID,
		QuestionID: question.ID,
		ChoiceID:   question.Choices[1].ID,
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 1}, choiceCounters(t, database, question.ID))
	assert.Equal(t, 1, voteCount(t, database))
}

func TestVoteRepositoryCast_DuplicateKeepsCounters(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	votes := NewVoteRepository(database)

	alice := createTestUser(t, database, "alice")
	question := createTestQuestion(t, database, alice, "Tea or coffee?", time.Now(), nil)

	_, err := votes.Cast(ctx, &models.Vote{UserID: alice.ID, QuestionID: question.ID, ChoiceID: question.Choices[0].ID})
	require.NoError(t, err)

	for _, choice := range question.Choices {
		_, err = votes.Cast(ctx, &models.Vote{UserID: alice.ID, QuestionID: question.ID, ChoiceID: choice.ID})
		assert.ErrorIs(t, err, ErrDuplicate)
	}

	assert.Equal(t, []int64{1, 0}, choiceCounters(t, database, question.ID))
	assert.Equal(t, 1, voteCount(t, database))

	stored, err := votes.GetOneByUserAndQuestion(ctx, alice.ID, question.ID)
	require.NoError(t, err)
	assert.Equal(t, question.Choices[0].ID, stored.ChoiceID)
}

func TestVoteRepositoryCast_ChoiceOfAnotherQuestion(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, database, "alice")
	first := createTestQuestion(t, database, alice, "Tea or coffee?", time.Now(), nil)
	second := createTestQuestion(t, database, alice, "Cats or dogs?", time.Now(), nil)

	_, err := NewVoteRepository(database).Cast(ctx, &models.Vote{
		UserID:     alice.ID,
		QuestionID: first.ID,
		ChoiceID:   second.Choices[0].ID,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []int64{0, 0}, choiceCounters(t, database, first.ID))
	assert.Equal(t, []int64{0, 0}, choiceCounters(t, database, second.ID))
	assert.Equal(t, 0, voteCount(t, database))
}

func TestQuestionRepositoryGetManyActive(t *testing.T) {
	database := newTestDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	future := now.Add(time.Hour)
	past := now.Add(-time.Minute)
	boundary := now

	alice := createTestUser(t, database, "alice")
	createTestQuestion(t, database, alice, "open", now.Add(-3*time.Hour), nil)
	createTestQuestion(t, database, alice, "future", now.Add(-time.Hour), &future)
	createTestQuestion(t, database, alice, "boundary", now.Add(-2*time.Hour), &boundary)
	createTestQuestion(t, database, alice, "closed", now.Add(-30*time.Minute), &past)

	questions, err := NewQuestionRepository(database).GetManyActive(context.Background(), now)
	require.NoError(t, err)

	texts := make([]string, 0, len(questions))
	for _, question := range questions {
		texts = append(texts, question.QuestionText)
		assert.Len(t, question.Choices, 2)
	}
	assert.Equal(t, []string{"future", "boundary", "open"}, texts)
}

func TestUserRepositoryUpdate_WritesAvatar(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(database)

	alice := createTestUser(t, database, "alice")

	profile, err := profiles.GetOneByUserID(ctx, alice.ID)
	require.NoError(t, err)

	alice.Username = "alice2"
	profile.Avatar = "avatars/new.png"

	updated, err := NewUserRepository(database).Update(ctx, alice, profile)
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)

	stored, err := profiles.GetOneByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "avatars/new.png", stored.Avatar)
}

func TestUserRepositoryUpdate_RollsBackUserOnProfileFailure(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(database)
	profiles := NewProfileRepository(database)

	alice := createTestUser(t, database, "alice")

	profile, err := profiles.GetOneByUserID(ctx, alice.ID)
	require.NoError(t, err)

	changed := *alice
	changed.Username = "alice2"
	profile.Avatar = strings.Repeat("a", 101)

	_, err = users.Update(ctx, &changed, profile)
	require.Error(t, err)

	stored, err := users.GetOne(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)

	storedProfile, err := profiles.GetOneByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, storedProfile.Avatar)
}

func TestUserRepositoryUpdate_DuplicateUsername(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)

	createTestUser(t, database, "alice")
	bob := createTestUser(t, database, "bob")

	bob.Username = "alice"

	_, err := users.Update(context.Background(), bob, nil)
	assert.ErrorIs(t, err, ErrDuplicate)
}
