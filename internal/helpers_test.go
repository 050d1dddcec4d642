package internal

import (
	"polling_system/internal/db/models"
	"polling_system/internal/services"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateTime(t *testing.T) {
	date := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "05.03.2024 14:30", FormatDateTime(date))
}

func TestParseDateTimeLocal_Empty(t *testing.T) {
	parsed, err := ParseDateTimeLocal("", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, parsed)
}

func TestParseDateTimeLocal_Valid(t *testing.T) {
	parsed, err := ParseDateTimeLocal("2024-03-05T14:30", time.UTC)
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC), *parsed)
}

func TestParseDateTimeLocal_Invalid(t *testing.T) {
	_, err := ParseDateTimeLocal("05.03.2024", time.UTC)
	assert.Error(t, err)
}

func TestFormatResults(t *testing.T) {
	question := &models.Question{
		QuestionText: "Tea or coffee?",
		Choices: []*models.Choice{
			{ID: 1, ChoiceText: "Tea", Votes: 1},
			{ID: 2, ChoiceText: "Coffee", Votes: 2},
		},
	}

	text := FormatResults(question, services.CalculateTally(question))

	assert.Equal(t, "Tea or coffee?\nTea: 1 (33.33%)\nCoffee: 2 (66.67%)\nTotal votes: 3", text)
}
