package engine

import (
	"math/rand"
	"testing"
)

func testPool(n int) []Question {
	pool := make([]Question, n)
	for i := range pool {
		pool[i] = Question{
			ID:             string(rune('a' + i)),
			Prompt:         "prompt",
			Kind:           KindMultipleChoice,
			Options:        []string{"A", "B"},
			ExpectedAnswer: "A",
			Difficulty:     DifficultyEasy,
		}
	}
	return pool
}

func TestBuildSessionNoDuplicates(t *testing.T) {
	pool := testPool(10)
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		sess, err := BuildSession("sub", "mod", 6, pool, QuizMode(), rng)
		if err != nil {
			t.Fatalf("BuildSession: %v", err)
		}
		seen := make(map[string]bool)
		for _, q := range sess.Questions() {
			if seen[q.ID] {
				t.Fatalf("trial %d: duplicate question %q in session", trial, q.ID)
			}
			seen[q.ID] = true
		}
		if len(seen) != 6 {
			t.Fatalf("trial %d: got %d questions, want 6", trial, len(seen))
		}
	}
}

func TestBuildSessionClampsCount(t *testing.T) {
	sess, err := BuildSession("sub", "mod", 100, testPool(10), QuizMode(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("BuildSession: %v", err)
	}
	if sess.QuestionCount() != 10 {
		t.Errorf("QuestionCount() = %d, want 10 (clamped)", sess.QuestionCount())
	}
}

func TestBuildSessionRejectsNonPositiveCount(t *testing.T) {
	for _, count := range []int{0, -1} {
		_, err := BuildSession("sub", "mod", count, testPool(5), QuizMode(), nil)
		if err != ErrInvalidCount {
			t.Errorf("BuildSession(count=%d) err = %v, want ErrInvalidCount", count, err)
		}
	}
}

func TestBuildSessionEmptyPool(t *testing.T) {
	_, err := BuildSession("sub", "mod", 5, nil, QuizMode(), nil)
	if err != ErrEmptyPool {
		t.Errorf("BuildSession(empty pool) err = %v, want ErrEmptyPool", err)
	}
}

func TestBuildSessionDoesNotMutatePool(t *testing.T) {
	pool := testPool(8)
	ids := make([]string, len(pool))
	for i, q := range pool {
		ids[i] = q.ID
	}

	if _, err := BuildSession("sub", "mod", 8, pool, PuzzleMode(), rand.New(rand.NewSource(7))); err != nil {
		t.Fatalf("BuildSession: %v", err)
	}

	for i, q := range pool {
		if q.ID != ids[i] {
			t.Fatalf("pool mutated at index %d: got %q, want %q", i, q.ID, ids[i])
		}
	}
}

func TestBuildSessionDedupesDirtyPool(t *testing.T) {
	pool := append(testPool(4), testPool(4)...) // every ID twice

	sess, err := BuildSession("sub", "mod", 8, pool, QuizMode(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("BuildSession: %v", err)
	}
	if sess.QuestionCount() != 4 {
		t.Errorf("QuestionCount() = %d, want 4 unique", sess.QuestionCount())
	}
}

func TestBuildSessionDeterministicWithSeed(t *testing.T) {
	pool := testPool(12)

	a, err := BuildSession("sub", "mod", 12, pool, QuizMode(), rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("BuildSession: %v", err)
	}
	b, err := BuildSession("sub", "mod", 12, pool, QuizMode(), rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("BuildSession: %v", err)
	}

	qa, qb := a.Questions(), b.Questions()
	for i := range qa {
		if qa[i].ID != qb[i].ID {
			t.Fatalf("same seed produced different orders at index %d: %q vs %q", i, qa[i].ID, qb[i].ID)
		}
	}
}

func TestBuildSessionStartsActive(t *testing.T) {
	sess, err := BuildSession("sub", "mod", 3, testPool(5), RiddleMode(), rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("BuildSession: %v", err)
	}
	if sess.State() != StateActive {
		t.Errorf("State() = %v, want Active", sess.State())
	}
	if sess.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", sess.CurrentIndex())
	}
	if sess.ID == "" {
		t.Error("session ID is empty")
	}
}
