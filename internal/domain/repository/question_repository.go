package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"stackit/internal/common"
	"stackit/internal/domain/model"
)

const (
	SortNewest  = "newest"
	SortVotes   = "votes"
	SortAnswers = "answers"
	SortViews   = "views"

	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// ListQuestionsParams drives the retrieval pipeline: optional text search,
// optional exact tag match, single-key sort, offset/limit pagination.
type ListQuestionsParams struct {
	Search string
	Tag    string
	Sort   string // unrecognized values fall back to newest
	Page   int    // 1-based
	Limit  int
}

// Normalize clamps page and limit into their valid ranges.
func (p *ListQuestionsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

type QuestionRepository interface {
	// List returns one page of matching questions plus the total match count.
	List(ctx context.Context, params ListQuestionsParams) ([]model.Question, int, error)
	FindByID(ctx context.Context, id int64) (*model.Question, error)
	// AnswersByQuestionID returns the answers for a question, accepted first,
	// then by votes descending.
	AnswersByQuestionID(ctx context.Context, questionID int64) ([]model.Answer, error)
	// Insert exists so a durable store can be substituted without touching
	// route logic. The demo services never call it: created questions are
	// returned to the caller but not persisted.
	Insert(ctx context.Context, q *model.Question) error
	// TagCounts returns tag frequencies across the stored questions.
	TagCounts(ctx context.Context) (map[string]int, error)
}

type memoryQuestionRepository struct {
	mu        sync.RWMutex
	questions []model.Question
	answers   []model.Answer
}

func NewMemoryQuestionRepository(questions []model.Question, answers []model.Answer) QuestionRepository {
	return &memoryQuestionRepository{questions: questions, answers: answers}
}

func (r *memoryQuestionRepository) List(_ context.Context, params ListQuestionsParams) ([]model.Question, int, error) {
	params.Normalize()

	r.mu.RLock()
	filtered := filterQuestions(r.questions, params.Search, params.Tag)
	r.mu.RUnlock()

	sortQuestions(filtered, params.Sort)
	total := len(filtered)
	return paginate(filtered, params.Page, params.Limit), total, nil
}

// filterQuestions applies the search and tag predicates over a fresh slice;
// the backing array is never reordered.
func filterQuestions(questions []model.Question, search, tag string) []model.Question {
	filtered := make([]model.Question, 0, len(questions))
	needle := strings.ToLower(search)
	for i := range questions {
		q := &questions[i]
		if needle != "" &&
			!strings.Contains(strings.ToLower(q.Title), needle) &&
			!strings.Contains(strings.ToLower(q.Content), needle) {
			continue
		}
		if tag != "" && !q.HasTag(tag) {
			continue
		}
		filtered = append(filtered, *q)
	}
	return filtered
}

// sortQuestions orders by the chosen numeric field descending; unrecognized
// keys fall back to newest-first. Ordering is stable.
func sortQuestions(questions []model.Question, sortKey string) {
	var less func(a, b *model.Question) bool
	switch sortKey {
	case SortVotes:
		less = func(a, b *model.Question) bool { return a.Votes > b.Votes }
	case SortAnswers:
		less = func(a, b *model.Question) bool { return a.Answers > b.Answers }
	case SortViews:
		less = func(a, b *model.Question) bool { return a.Views > b.Views }
	default: // newest
		less = func(a, b *model.Question) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(questions, func(i, j int) bool {
		return less(&questions[i], &questions[j])
	})
}

// paginate slices out the requested page; out-of-range pages yield an empty
// slice, not an error.
func paginate(questions []model.Question, page, limit int) []model.Question {
	start := (page - 1) * limit
	if start >= len(questions) {
		return []model.Question{}
	}
	end := start + limit
	if end > len(questions) {
		end = len(questions)
	}
	return questions[start:end]
}

func (r *memoryQuestionRepository) FindByID(_ context.Context, id int64) (*model.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.questions {
		if r.questions[i].ID == id {
			q := r.questions[i]
			return &q, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryQuestionRepository) AnswersByQuestionID(_ context.Context, questionID int64) ([]model.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	answers := make([]model.Answer, 0)
	for i := range r.answers {
		if r.answers[i].QuestionID == questionID {
			answers = append(answers, r.answers[i])
		}
	}
	sort.SliceStable(answers, func(i, j int) bool {
		if answers[i].Accepted != answers[j].Accepted {
			return answers[i].Accepted
		}
		return answers[i].Votes > answers[j].Votes
	})
	return answers, nil
}

func (r *memoryQuestionRepository) Insert(_ context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions = append(r.questions, *q)
	return nil
}

func (r *memoryQuestionRepository) TagCounts(_ context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int)
	for i := range r.questions {
		for _, t := range r.questions[i].Tags {
			counts[t]++
		}
	}
	return counts, nil
}
