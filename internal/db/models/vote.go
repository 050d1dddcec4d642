package models

import "time"

type Vote struct {
	ID         int64     `json:"id" pg:",pk"`
	UserID     int64     `json:"user_id" pg:",notnull"`
	QuestionID int64     `json:"question_id" pg:",notnull"`
	ChoiceID   int64     `json:"choice_id" pg:",notnull"`
	CreatedAt  time.Time `json:"created_at" pg:"default:now()"`
}
