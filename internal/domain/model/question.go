package model

import (
	"time"
)

type QuestionDifficulty string

const (
	DifficultyBeginner     QuestionDifficulty = "beginner"
	DifficultyIntermediate QuestionDifficulty = "intermediate"
	DifficultyAdvanced     QuestionDifficulty = "advanced"
)

// ValidDifficulty reports whether d is one of the known difficulty levels.
func ValidDifficulty(d QuestionDifficulty) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// MaxQuestionTags bounds the tag set on a question.
const MaxQuestionTags = 5

// Author is a denormalized snapshot of the posting user, not a foreign key.
type Author struct {
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	Reputation int    `json:"reputation"`
}

type Question struct {
	ID         int64              `json:"id"`
	Title      string             `json:"title"`
	Slug       string             `json:"slug"`
	Content    string             `json:"content"` // HTML-bearing
	AuthorID   int64              `json:"authorId"`
	Author     Author             `json:"author"`
	Votes      int                `json:"votes"` // may go negative
	Answers    int                `json:"answers"`
	Views      int                `json:"views"`
	Tags       []string           `json:"tags"`
	Difficulty QuestionDifficulty `json:"difficulty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// HasTag reports exact membership of tag in the question's tag set.
func (q *Question) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
