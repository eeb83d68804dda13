package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edugram/edugram-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, module_id, kind, prompt, options, answer_index, answer_text, hint, explanation, difficulty, time_limit_seconds, created_at, updated_at`

func scanQuestion(row pgx.Row) (*model.Question, error) {
	q := &model.Question{}
	err := row.Scan(&q.ID, &q.ModuleID, &q.Kind, &q.Prompt, &q.Options, &q.AnswerIndex, &q.AnswerText,
		&q.Hint, &q.Explanation, &q.Difficulty, &q.TimeLimitSeconds, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListByModule retrieves every question in a module.
func (r *QuestionRepository) ListByModule(ctx context.Context, moduleID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE module_id = $1 ORDER BY created_at, id`, moduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// GetByID retrieves a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	return scanQuestion(r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id))
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	q.ID = uuid.New()
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (id, module_id, kind, prompt, options, answer_index, answer_text, hint, explanation, difficulty, time_limit_seconds)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING created_at, updated_at`,
		q.ID, q.ModuleID, q.Kind, q.Prompt, q.Options, q.AnswerIndex, q.AnswerText,
		q.Hint, q.Explanation, q.Difficulty, q.TimeLimitSeconds,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
}

// ReplaceForModule atomically replaces a module's question set.
func (r *QuestionRepository) ReplaceForModule(ctx context.Context, moduleID uuid.UUID, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE module_id = $1`, moduleID); err != nil {
		return err
	}

	for i := range questions {
		q := &questions[i]
		q.ID = uuid.New()
		q.ModuleID = moduleID
		if _, err := tx.Exec(ctx,
			`INSERT INTO questions (id, module_id, kind, prompt, options, answer_index, answer_text, hint, explanation, difficulty, time_limit_seconds)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			q.ID, q.ModuleID, q.Kind, q.Prompt, q.Options, q.AnswerIndex, q.AnswerText,
			q.Hint, q.Explanation, q.Difficulty, q.TimeLimitSeconds); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a question.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}
