package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edugram/edugram-backend/internal/model"
)

// PlaySessionRepository persists completed play sessions.
type PlaySessionRepository struct {
	pool *pgxpool.Pool
}

// NewPlaySessionRepository creates a new PlaySessionRepository.
func NewPlaySessionRepository(pool *pgxpool.Pool) *PlaySessionRepository {
	return &PlaySessionRepository{pool: pool}
}

// Create inserts a finished session record.
func (r *PlaySessionRepository) Create(ctx context.Context, rec *model.PlaySessionRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO play_sessions (id, user_id, subject_id, module_id, mode, total_score, correct_count, question_count, accuracy, best_streak, started_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.ID, rec.UserID, rec.SubjectID, rec.ModuleID, rec.Mode, rec.TotalScore,
		rec.CorrectCount, rec.QuestionCount, rec.Accuracy, rec.BestStreak,
		rec.StartedAt, rec.CompletedAt)
	return err
}

// ListByUser retrieves a user's session history, most recent first.
func (r *PlaySessionRepository) ListByUser(ctx context.Context, userID, limit, offset int) ([]model.PlaySessionRecord, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM play_sessions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, subject_id, module_id, mode, total_score, correct_count, question_count, accuracy, best_streak, started_at, completed_at
		 FROM play_sessions WHERE user_id = $1
		 ORDER BY completed_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []model.PlaySessionRecord
	for rows.Next() {
		var rec model.PlaySessionRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.SubjectID, &rec.ModuleID, &rec.Mode,
			&rec.TotalScore, &rec.CorrectCount, &rec.QuestionCount, &rec.Accuracy,
			&rec.BestStreak, &rec.StartedAt, &rec.CompletedAt); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

// BestScoreByModule returns the user's best score per module within a subject.
func (r *PlaySessionRepository) BestScoreByModule(ctx context.Context, userID int, subjectID uuid.UUID) (map[uuid.UUID]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT module_id, MAX(total_score)
		 FROM play_sessions WHERE user_id = $1 AND subject_id = $2
		 GROUP BY module_id`,
		userID, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	best := make(map[uuid.UUID]int)
	for rows.Next() {
		var moduleID uuid.UUID
		var score int
		if err := rows.Scan(&moduleID, &score); err != nil {
			return nil, err
		}
		best[moduleID] = score
	}
	return best, rows.Err()
}
