package models

type Choice struct {
	ID         int64  `json:"id" pg:",pk"`
	QuestionID int64  `json:"question_id" pg:",notnull"`
	ChoiceText string `json:"choice_text" pg:",notnull"`
	Votes      int64  `json:"votes" pg:",notnull,use_zero"`
}
