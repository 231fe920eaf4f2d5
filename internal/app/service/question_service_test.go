package service_test

import (
	"context"
	"testing"

	"stackit/internal/app/service"
	"stackit/internal/common"
	"stackit/internal/domain/model"
	"stackit/internal/domain/repository"
	"stackit/internal/platform/counter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuestionService() *service.QuestionService {
	repo := repository.NewMemoryQuestionRepository(repository.SeedQuestions(), repository.SeedAnswers())
	return service.NewQuestionService(repo, counter.NewMemoryViewCounter())
}

func TestListPaginationMetadata(t *testing.T) {
	svc := newQuestionService()

	questions, pagination, err := svc.List(context.Background(), repository.ListQuestionsParams{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 1, pagination.Limit)
	assert.Equal(t, 2, pagination.Total)
	assert.Equal(t, 2, pagination.TotalPages)
}

func TestCreateQuestion(t *testing.T) {
	tests := []struct {
		name    string
		req     service.CreateQuestionRequest
		wantErr error
	}{
		{
			name: "valid",
			req: service.CreateQuestionRequest{
				Title:   "How do I test HTTP handlers in Go?",
				Content: "httptest or a real server?",
				Tags:    []string{"go", "testing"},
			},
		},
		{
			name:    "missing title",
			req:     service.CreateQuestionRequest{Content: "x", Tags: []string{"go"}},
			wantErr: common.ErrMissingFields,
		},
		{
			name:    "empty tags",
			req:     service.CreateQuestionRequest{Title: "t", Content: "x", Tags: []string{}},
			wantErr: common.ErrMissingFields,
		},
		{
			name: "too many tags",
			req: service.CreateQuestionRequest{
				Title: "t", Content: "x",
				Tags: []string{"a", "b", "c", "d", "e", "f"},
			},
			wantErr: common.ErrValidation,
		},
		{
			name: "unknown difficulty",
			req: service.CreateQuestionRequest{
				Title: "t", Content: "x", Tags: []string{"go"},
				Difficulty: "impossible",
			},
			wantErr: common.ErrValidation,
		},
	}

	svc := newQuestionService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, question.ID)
			assert.Equal(t, "how-do-i-test-http-handlers-in-go", question.Slug)
			assert.Equal(t, model.DifficultyIntermediate, question.Difficulty, "empty difficulty defaults")
			assert.Zero(t, question.Votes)
			assert.Zero(t, question.Answers)
			assert.Zero(t, question.Views)
			assert.Equal(t, "current_user", question.Author.Name)
		})
	}
}

// Created questions are not persisted: a follow-up listing does not include them.
func TestCreateQuestionIsNotPersisted(t *testing.T) {
	svc := newQuestionService()

	_, err := svc.Create(context.Background(), service.CreateQuestionRequest{
		Title:   "Ephemeral question",
		Content: "gone after this response",
		Tags:    []string{"go"},
	})
	require.NoError(t, err)

	_, pagination, err := svc.List(context.Background(), repository.ListQuestionsParams{})
	require.NoError(t, err)
	assert.Equal(t, 2, pagination.Total)
}

func TestGetBumpsViews(t *testing.T) {
	svc := newQuestionService()

	first, answers, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 234+1, first.Views)
	assert.Len(t, answers, 2)

	second, _, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 234+2, second.Views)
}

func TestGetUnknownQuestion(t *testing.T) {
	svc := newQuestionService()

	_, _, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestVote(t *testing.T) {
	svc := newQuestionService()

	votes, err := svc.Vote(context.Background(), 1, service.VoteRequest{Direction: "up"})
	require.NoError(t, err)
	assert.Equal(t, 16, votes)

	votes, err = svc.Vote(context.Background(), 1, service.VoteRequest{Direction: "down"})
	require.NoError(t, err)
	assert.Equal(t, 14, votes)

	_, err = svc.Vote(context.Background(), 1, service.VoteRequest{Direction: "sideways"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Vote(context.Background(), 404, service.VoteRequest{Direction: "up"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestBookmark(t *testing.T) {
	svc := newQuestionService()

	assert.NoError(t, svc.Bookmark(context.Background(), 2))
	assert.ErrorIs(t, svc.Bookmark(context.Background(), 404), common.ErrNotFound)
}

func TestPopularTags(t *testing.T) {
	svc := newQuestionService()

	tags, err := svc.PopularTags(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, tags)
	// Seeds carry 8 distinct tags, each once: ordering is alphabetical.
	assert.Equal(t, 8, len(tags))
	for i := 1; i < len(tags); i++ {
		if tags[i-1].Count == tags[i].Count {
			assert.Less(t, tags[i-1].Name, tags[i].Name)
		} else {
			assert.Greater(t, tags[i-1].Count, tags[i].Count)
		}
	}
}
