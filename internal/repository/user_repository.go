package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edugram/edugram-backend/internal/model"
)

var ErrDuplicateEmail = errors.New("user with this email already exists")

// UserRepository handles user account data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, total_score, questions_answered, correct_answers, sessions_completed, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.TotalScore, &u.QuestionsAnswered, &u.CorrectAnswers, &u.SessionsCompleted, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail retrieves a user by their unique email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, total_score, questions_answered, correct_answers, sessions_completed, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.TotalScore, &u.QuestionsAnswered, &u.CorrectAnswers, &u.SessionsCompleted, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new user account.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpdateProfile modifies a user's name and, when non-empty, password hash.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int, name, passwordHash string) error {
	if passwordHash == "" {
		_, err := r.pool.Exec(ctx,
			`UPDATE users SET name = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
			name, id)
		return err
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $1, password_hash = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		name, passwordHash, id)
	return err
}

// StatsDelta is one user's accumulated play results awaiting application.
type StatsDelta struct {
	UserID            int
	ScoreDelta        int
	QuestionsAnswered int
	CorrectAnswers    int
	SessionsCompleted int
}

// ApplyStatsBatch applies multiple stats deltas in a single statement.
func (r *UserRepository) ApplyStatsBatch(ctx context.Context, deltas []StatsDelta) error {
	if len(deltas) == 0 {
		return nil
	}

	ids := make([]int, len(deltas))
	scores := make([]int, len(deltas))
	answered := make([]int, len(deltas))
	correct := make([]int, len(deltas))
	sessions := make([]int, len(deltas))
	for i, d := range deltas {
		ids[i] = d.UserID
		scores[i] = d.ScoreDelta
		answered[i] = d.QuestionsAnswered
		correct[i] = d.CorrectAnswers
		sessions[i] = d.SessionsCompleted
	}

	_, err := r.pool.Exec(ctx,
		`UPDATE users AS u SET
			total_score = u.total_score + s.score,
			questions_answered = u.questions_answered + s.answered,
			correct_answers = u.correct_answers + s.correct,
			sessions_completed = u.sessions_completed + s.sessions,
			updated_at = CURRENT_TIMESTAMP
		 FROM (
			SELECT UNNEST($1::int[]) AS id,
			       UNNEST($2::int[]) AS score,
			       UNNEST($3::int[]) AS answered,
			       UNNEST($4::int[]) AS correct,
			       UNNEST($5::int[]) AS sessions
		 ) AS s
		 WHERE u.id = s.id`,
		ids, scores, answered, correct, sessions)
	return err
}

// ApplyStats applies a single stats delta. Used as the fallback path when a
// batched update fails.
func (r *UserRepository) ApplyStats(ctx context.Context, d StatsDelta) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET
			total_score = total_score + $1,
			questions_answered = questions_answered + $2,
			correct_answers = correct_answers + $3,
			sessions_completed = sessions_completed + $4,
			updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		d.ScoreDelta, d.QuestionsAnswered, d.CorrectAnswers, d.SessionsCompleted, d.UserID)
	return err
}

// ListTopByScore returns usernames and scores for leaderboard backfill.
func (r *UserRepository) ListTopByScore(ctx context.Context, limit int) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, password_hash, role, total_score, questions_answered, correct_answers, sessions_completed, created_at, updated_at
		 FROM users WHERE role = $1 ORDER BY total_score DESC, id LIMIT $2`,
		model.RoleUser, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.TotalScore, &u.QuestionsAnswered, &u.CorrectAnswers, &u.SessionsCompleted, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
