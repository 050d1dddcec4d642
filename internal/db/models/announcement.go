package models

import "time"

type Announcement struct {
	QuestionID  int64     `json:"question_id" pg:",pk"`
	AnnouncedAt time.Time `json:"announced_at" pg:"default:now()"`
}
