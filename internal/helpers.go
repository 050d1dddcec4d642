package internal

import (
	"fmt"
	"polling_system/internal/db/models"
	"polling_system/internal/services"
	"strings"
	"time"
)

const (
	formatDDMMYYYYHHMM  = "02.01.2006 15:04"
	formatDateTimeLocal = "2006-01-02T15:04"
)

func FormatDateTime(date time.Time) string {
	return date.Format(formatDDMMYYYYHHMM)
}

// ParseDateTimeLocal parses the value of an <input type="datetime-local"> in loc.
// An empty value yields nil.
func ParseDateTimeLocal(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation(formatDateTimeLocal, value, loc)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// FormatResults renders the tally of a question as plain text, one choice per
// line followed by the total.
func FormatResults(question *models.Question, tally services.Tally) string {
	var b strings.Builder

	b.WriteString(question.QuestionText)
	b.WriteString("\n")

	for _, choice := range tally.Choices {
		fmt.Fprintf(&b, "%s: %d (%.2f%%)\n", choice.Choice.ChoiceText, choice.Votes, choice.Percentage)
	}

	fmt.Fprintf(&b, "Total votes: %d", tally.TotalVotes)

	return b.String()
}
