package service

import (
	"context"
	"time"

	"stackit/internal/common"
	"stackit/internal/domain/model"
	"stackit/internal/domain/repository"
)

type AnswerService struct {
	questionRepo repository.QuestionRepository
}

func NewAnswerService(questionRepo repository.QuestionRepository) *AnswerService {
	return &AnswerService{questionRepo: questionRepo}
}

type PostAnswerRequest struct {
	Content string `json:"content"`
}

// Post fabricates an answer authored by the given snapshot. Like question
// creation, the result is returned but not stored.
func (s *AnswerService) Post(ctx context.Context, questionID int64, author model.Author, req PostAnswerRequest) (*model.Answer, error) {
	if req.Content == "" {
		return nil, common.ErrMissingFields
	}

	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		return nil, err
	}

	now := time.Now()
	answer := &model.Answer{
		ID:         now.UnixMilli(),
		QuestionID: questionID,
		Content:    req.Content,
		Author:     author,
		Votes:      0,
		Accepted:   false,
		CreatedAt:  now,
	}
	return answer, nil
}
