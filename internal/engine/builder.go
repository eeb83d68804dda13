package engine

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// BuildSession selects a randomized, duplicate-free subset of the pool and
// returns a new Active session over it. The pool is never mutated. A count
// larger than the pool is clamped to the pool size; a non-positive count
// fails with ErrInvalidCount.
//
// rng makes the shuffle seedable for deterministic tests. Pass nil to use a
// time-seeded source.
func BuildSession(subjectID, moduleID string, count int, pool []Question, mode ModeConfig, rng *rand.Rand) (*Session, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Drop duplicate IDs before permuting so a dirty pool can never place
	// the same question twice in one session.
	seen := make(map[string]struct{}, len(pool))
	unique := make([]Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; ok {
			continue
		}
		seen[q.ID] = struct{}{}
		unique = append(unique, q)
	}

	if count > len(unique) {
		count = len(unique)
	}

	questions := make([]Question, 0, count)
	for _, idx := range rng.Perm(len(unique))[:count] {
		questions = append(questions, unique[idx])
	}

	return &Session{
		ID:        uuid.New().String(),
		SubjectID: subjectID,
		ModuleID:  moduleID,
		Mode:      mode,
		StartedAt: time.Now(),

		questions: questions,
		answers:   make(map[int]string, count),
		outcomes:  make([]Outcome, 0, count),
		state:     StateActive,
	}, nil
}
