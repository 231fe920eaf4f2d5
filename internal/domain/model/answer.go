package model

import (
	"time"
)

type Answer struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"questionId"`
	Content    string    `json:"content"` // HTML-bearing
	Author     Author    `json:"author"`
	Votes      int       `json:"votes"`
	Accepted   bool      `json:"accepted"`
	CreatedAt  time.Time `json:"createdAt"`
}
