package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edugram/edugram-backend/internal/model"
)

// SubjectRepository handles subject and module data access.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

// ─── Subjects ───────────────────────────────────────────────────────────────

// List retrieves all subjects ordered by position.
func (r *SubjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, position, created_at, updated_at
		 FROM subjects ORDER BY position, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// GetByID retrieves a subject by ID.
func (r *SubjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	s := &model.Subject{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, position, created_at, updated_at
		 FROM subjects WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Description, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	s.ID = uuid.New()
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (id, name, description, position)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		s.ID, s.Name, s.Description, s.Position,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// Update modifies an existing subject.
func (r *SubjectRepository) Update(ctx context.Context, s *model.Subject) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE subjects SET name = $1, description = $2, position = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		s.Name, s.Description, s.Position, s.ID)
	return err
}

// Delete removes a subject and, via cascade, its modules and questions.
func (r *SubjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	return err
}

// ─── Modules ────────────────────────────────────────────────────────────────

// ListModules retrieves a subject's modules ordered by position.
func (r *SubjectRepository) ListModules(ctx context.Context, subjectID uuid.UUID) ([]model.Module, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, subject_id, title, default_mode, position, created_at, updated_at
		 FROM modules WHERE subject_id = $1 ORDER BY position, title`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modules []model.Module
	for rows.Next() {
		var m model.Module
		if err := rows.Scan(&m.ID, &m.SubjectID, &m.Title, &m.DefaultMode, &m.Position, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// GetModuleByID retrieves a single module.
func (r *SubjectRepository) GetModuleByID(ctx context.Context, id uuid.UUID) (*model.Module, error) {
	m := &model.Module{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, subject_id, title, default_mode, position, created_at, updated_at
		 FROM modules WHERE id = $1`, id,
	).Scan(&m.ID, &m.SubjectID, &m.Title, &m.DefaultMode, &m.Position, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateModule inserts a new module under a subject.
func (r *SubjectRepository) CreateModule(ctx context.Context, m *model.Module) error {
	m.ID = uuid.New()
	return r.pool.QueryRow(ctx,
		`INSERT INTO modules (id, subject_id, title, default_mode, position)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		m.ID, m.SubjectID, m.Title, m.DefaultMode, m.Position,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
}

// UpdateModule modifies an existing module.
func (r *SubjectRepository) UpdateModule(ctx context.Context, m *model.Module) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE modules SET title = $1, default_mode = $2, position = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		m.Title, m.DefaultMode, m.Position, m.ID)
	return err
}

// DeleteModule removes a module and, via cascade, its questions.
func (r *SubjectRepository) DeleteModule(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM modules WHERE id = $1`, id)
	return err
}
