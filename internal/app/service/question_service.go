package service

import (
	"context"
	"log"
	"sort"
	"time"

	"stackit/internal/common"
	"stackit/internal/domain/model"
	"stackit/internal/domain/repository"
	"stackit/internal/platform/counter"

	"github.com/gosimple/slug"
)

type QuestionService struct {
	questionRepo repository.QuestionRepository
	views        counter.ViewCounter
}

func NewQuestionService(questionRepo repository.QuestionRepository, views counter.ViewCounter) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, views: views}
}

type CreateQuestionRequest struct {
	Title      string                   `json:"title"`
	Content    string                   `json:"content"`
	Tags       []string                 `json:"tags"`
	Difficulty model.QuestionDifficulty `json:"difficulty"`
}

type VoteRequest struct {
	Direction string `json:"direction"` // "up" or "down"
}

func (s *QuestionService) List(ctx context.Context, params repository.ListQuestionsParams) ([]model.Question, common.Pagination, error) {
	params.Normalize()

	questions, total, err := s.questionRepo.List(ctx, params)
	if err != nil {
		return nil, common.Pagination{}, common.Errorf("failed to list questions: %w", err)
	}

	return questions, common.Pagination{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: (total + params.Limit - 1) / params.Limit,
	}, nil
}

// Create validates and fabricates a full question record. The record is
// returned but not stored: subsequent retrievals will not include it.
func (s *QuestionService) Create(ctx context.Context, req CreateQuestionRequest) (*model.Question, error) {
	if req.Title == "" || req.Content == "" || len(req.Tags) == 0 {
		return nil, common.ErrMissingFields
	}
	if len(req.Tags) > model.MaxQuestionTags {
		return nil, common.Errorf("at most %d tags allowed: %w", model.MaxQuestionTags, common.ErrValidation)
	}
	if req.Difficulty == "" {
		req.Difficulty = model.DifficultyIntermediate
	}
	if !model.ValidDifficulty(req.Difficulty) {
		return nil, common.Errorf("unknown difficulty %q: %w", req.Difficulty, common.ErrValidation)
	}

	now := time.Now()
	question := &model.Question{
		ID:       now.UnixMilli(),
		Title:    req.Title,
		Slug:     slug.Make(req.Title),
		Content:  req.Content,
		AuthorID: 1,
		Author: model.Author{
			Name:       "current_user",
			Avatar:     "/placeholder-user.jpg",
			Reputation: 1234,
		},
		Votes:      0,
		Answers:    0,
		Views:      0,
		Tags:       req.Tags,
		Difficulty: req.Difficulty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return question, nil
}

// Get returns a question with its answers and records a view. The returned
// Views is the stored value plus the live bump count; the store itself is
// never mutated.
func (s *QuestionService) Get(ctx context.Context, id int64) (*model.Question, []model.Answer, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	bumps, err := s.views.Bump(ctx, id)
	if err != nil {
		// View counting is best effort; serve the stored count.
		log.Printf("view counter bump failed for question %d: %v", id, err)
	} else {
		question.Views += int(bumps)
	}

	answers, err := s.questionRepo.AnswersByQuestionID(ctx, id)
	if err != nil {
		return nil, nil, common.Errorf("failed to load answers: %w", err)
	}
	return question, answers, nil
}

// Vote acknowledges a vote and returns the adjusted count without storing it.
func (s *QuestionService) Vote(ctx context.Context, id int64, req VoteRequest) (int, error) {
	var delta int
	switch req.Direction {
	case "up":
		delta = 1
	case "down":
		delta = -1
	default:
		return 0, common.Errorf("vote direction must be %q or %q: %w", "up", "down", common.ErrValidation)
	}

	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return question.Votes + delta, nil
}

// Bookmark acknowledges a bookmark without storing it.
func (s *QuestionService) Bookmark(ctx context.Context, id int64) error {
	_, err := s.questionRepo.FindByID(ctx, id)
	return err
}

const popularTagsLimit = 10

// PopularTags returns the most used tags, count descending then name ascending.
func (s *QuestionService) PopularTags(ctx context.Context) ([]model.TagCount, error) {
	counts, err := s.questionRepo.TagCounts(ctx)
	if err != nil {
		return nil, common.Errorf("failed to count tags: %w", err)
	}

	tags := make([]model.TagCount, 0, len(counts))
	for name, count := range counts {
		tags = append(tags, model.TagCount{Name: name, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Name < tags[j].Name
	})
	if len(tags) > popularTagsLimit {
		tags = tags[:popularTagsLimit]
	}
	return tags, nil
}
