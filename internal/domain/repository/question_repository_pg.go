package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"stackit/internal/common"
	"stackit/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// Expected schema:
//
//	questions(id BIGINT PRIMARY KEY, title TEXT, slug TEXT, content TEXT,
//	          author_id BIGINT, author_name TEXT, author_avatar TEXT,
//	          author_reputation INT, votes INT, answers INT, views INT,
//	          difficulty TEXT, created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ)
//	question_tags(question_id BIGINT, tag TEXT, UNIQUE(question_id, tag))
//	answers(id BIGINT PRIMARY KEY, question_id BIGINT, content TEXT,
//	        author_name TEXT, author_avatar TEXT, author_reputation INT,
//	        votes INT, accepted BOOLEAN, created_at TIMESTAMPTZ)
type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

const questionColumns = `q.id, q.title, q.slug, q.content, q.author_id,
       q.author_name, q.author_avatar, q.author_reputation,
       q.votes, q.answers, q.views, q.difficulty, q.created_at, q.updated_at`

// orderClause mirrors the in-memory pipeline: numeric field descending with
// id as the tie-breaker, anything unrecognized falls back to newest.
func orderClause(sortKey string) string {
	switch sortKey {
	case SortVotes:
		return " ORDER BY q.votes DESC, q.id"
	case SortAnswers:
		return " ORDER BY q.answers DESC, q.id"
	case SortViews:
		return " ORDER BY q.views DESC, q.id"
	default:
		return " ORDER BY q.created_at DESC, q.id"
	}
}

func (r *pgQuestionRepository) List(ctx context.Context, params ListQuestionsParams) ([]model.Question, int, error) {
	params.Normalize()

	var baseQuery strings.Builder
	baseQuery.WriteString(`SELECT DISTINCT ` + questionColumns + ` FROM questions q`)

	var countQuery strings.Builder
	countQuery.WriteString(`SELECT COUNT(DISTINCT q.id) FROM questions q`)

	var conditions []string
	var args []any
	argID := 1

	if params.Tag != "" {
		join := " JOIN question_tags qt ON q.id = qt.question_id"
		baseQuery.WriteString(join)
		countQuery.WriteString(join)
		conditions = append(conditions, fmt.Sprintf("qt.tag = $%d", argID))
		args = append(args, params.Tag)
		argID++
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(q.title ILIKE $%d OR q.content ILIKE $%d)", argID, argID+1))
		likeTerm := "%" + params.Search + "%"
		args = append(args, likeTerm, likeTerm)
		argID += 2
	}

	if len(conditions) > 0 {
		whereClause := " WHERE " + strings.Join(conditions, " AND ")
		baseQuery.WriteString(whereClause)
		countQuery.WriteString(whereClause)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery.String(), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgQuestionRepository.List count: %w", err)
	}

	baseQuery.WriteString(orderClause(params.Sort))
	baseQuery.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, params.Limit, (params.Page-1)*params.Limit)

	rows, err := r.db.QueryContext(ctx, baseQuery.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgQuestionRepository.List query: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, 0, fmt.Errorf("pgQuestionRepository.List scan: %w", err)
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgQuestionRepository.List rows.Err: %w", err)
	}

	if err := r.attachTags(ctx, questions); err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner, q *model.Question) error {
	return row.Scan(
		&q.ID, &q.Title, &q.Slug, &q.Content, &q.AuthorID,
		&q.Author.Name, &q.Author.Avatar, &q.Author.Reputation,
		&q.Votes, &q.Answers, &q.Views, &q.Difficulty, &q.CreatedAt, &q.UpdatedAt,
	)
}

// attachTags loads tags for the listed questions in one query.
func (r *pgQuestionRepository) attachTags(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}

	placeholders := make([]string, len(questions))
	args := make([]any, len(questions))
	index := make(map[int64]*model.Question, len(questions))
	for i := range questions {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = questions[i].ID
		index[questions[i].ID] = &questions[i]
	}

	query := fmt.Sprintf(
		`SELECT question_id, tag FROM question_tags WHERE question_id IN (%s) ORDER BY tag`,
		strings.Join(placeholders, ","),
	)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.attachTags query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var questionID int64
		var tag string
		if err := rows.Scan(&questionID, &tag); err != nil {
			return fmt.Errorf("pgQuestionRepository.attachTags scan: %w", err)
		}
		if q, ok := index[questionID]; ok {
			q.Tags = append(q.Tags, tag)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("pgQuestionRepository.attachTags rows.Err: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions q WHERE q.id = $1`
	q := &model.Question{}
	if err := scanQuestion(r.db.QueryRowContext(ctx, query, id), q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByID: %w", err)
	}

	single := []model.Question{*q}
	if err := r.attachTags(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

func (r *pgQuestionRepository) AnswersByQuestionID(ctx context.Context, questionID int64) ([]model.Answer, error) {
	query := `SELECT id, question_id, content, author_name, author_avatar, author_reputation,
	                 votes, accepted, created_at
	          FROM answers WHERE question_id = $1
	          ORDER BY accepted DESC, votes DESC, id`
	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.AnswersByQuestionID query: %w", err)
	}
	defer rows.Close()

	answers := []model.Answer{}
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(
			&a.ID, &a.QuestionID, &a.Content,
			&a.Author.Name, &a.Author.Avatar, &a.Author.Reputation,
			&a.Votes, &a.Accepted, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.AnswersByQuestionID scan: %w", err)
		}
		answers = append(answers, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.AnswersByQuestionID rows.Err: %w", err)
	}
	return answers, nil
}

func (r *pgQuestionRepository) Insert(ctx context.Context, q *model.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Insert begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO questions (id, title, slug, content, author_id, author_name,
	            author_avatar, author_reputation, votes, answers, views, difficulty,
	            created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = tx.ExecContext(ctx, query,
		q.ID, q.Title, q.Slug, q.Content, q.AuthorID, q.Author.Name,
		q.Author.Avatar, q.Author.Reputation, q.Votes, q.Answers, q.Views, q.Difficulty,
		q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("question with this id already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgQuestionRepository.Insert: %w", err)
	}

	for _, tag := range q.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO question_tags (question_id, tag) VALUES ($1, $2)`,
			q.ID, tag,
		); err != nil {
			return fmt.Errorf("pgQuestionRepository.Insert tag %q: %w", tag, err)
		}
	}

	return tx.Commit()
}

func (r *pgQuestionRepository) TagCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tag, COUNT(*) FROM question_tags GROUP BY tag`)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.TagCounts query: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tag string
		var count int
		if err := rows.Scan(&tag, &count); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.TagCounts scan: %w", err)
		}
		counts[tag] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.TagCounts rows.Err: %w", err)
	}
	return counts, nil
}
