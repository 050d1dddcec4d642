package models

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type PollStatus string

const (
	PollStatusOpen   PollStatus = "open"
	PollStatusClosed PollStatus = "closed"
)

func (s PollStatus) String() string {
	return string(s)
}

func (s PollStatus) CapitalizedString() string {
	return cases.Title(language.English).String(s.String())
}

type Question struct {
	ID           int64      `json:"id" pg:",pk"`
	QuestionText string     `json:"question_text" pg:",notnull"`
	Description  string     `json:"description" pg:",notnull,use_zero"`
	PubDate      time.Time  `json:"pub_date" pg:"default:now()"`
	EndDate      *time.Time `json:"end_date"`
	Image        string     `json:"image"`
	AuthorID     int64      `json:"author_id" pg:",notnull"`
	Choices      []*Choice  `json:"choices" pg:"rel:has-many"`
}

// IsActive reports whether the poll accepts votes at now. A poll without an
// end date never closes.
func (q *Question) IsActive(now time.Time) bool {
	if q.EndDate == nil {
		return true
	}
	return !now.After(*q.EndDate)
}

func (q *Question) Status(now time.Time) PollStatus {
	if q.IsActive(now) {
		return PollStatusOpen
	}
	return PollStatusClosed
}

func (q *Question) Choice(choiceID int64) *Choice {
	for _, choice := range q.Choices {
		if choice.ID == choiceID {
			return choice
		}
	}
	return nil
}
