package models

import "time"

type User struct {
	ID           int64     `json:"id" pg:",pk"`
	Username     string    `json:"username" pg:",notnull,unique"`
	Email        string    `json:"email" pg:",notnull,use_zero"`
	PasswordHash string    `json:"-" pg:",notnull"`
	DateJoined   time.Time `json:"date_joined" pg:"default:now()"`
}
