package engine

import (
	"math/rand"
	"testing"
)

// freeTextSession builds a session whose question order and answers are
// fully known, so tests can script exact correct/incorrect sequences.
func freeTextSession(t *testing.T, mode ModeConfig, n int) *Session {
	t.Helper()
	pool := make([]Question, n)
	for i := range pool {
		pool[i] = Question{
			ID:             string(rune('a' + i)),
			Prompt:         "prompt",
			Kind:           KindFreeText,
			ExpectedAnswer: "YES",
			Difficulty:     DifficultyEasy,
			Hint:           "it is affirmative",
			Explanation:    "because",
		}
	}
	sess, err := BuildSession("sub", "mod", n, pool, mode, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("BuildSession: %v", err)
	}
	return sess
}

func TestSessionOutcomesTrackCurrentIndex(t *testing.T) {
	sess := freeTextSession(t, QuizMode(), 4)

	for i := 0; i < 4; i++ {
		if got := len(sess.Outcomes()); got != sess.CurrentIndex() {
			t.Fatalf("before submit %d: outcomes=%d currentIndex=%d, want equal", i, got, sess.CurrentIndex())
		}
		if _, err := sess.SubmitAnswer("YES", 15); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	if sess.State() != StateCompleted {
		t.Errorf("State() = %v, want Completed", sess.State())
	}
}

func TestSessionScenarioAllCorrectQuizMode(t *testing.T) {
	// 5 free-text questions, all correct, no hints, 15s remaining each:
	// 5 × 250 = 1250 total, accuracy 100.
	sess := freeTextSession(t, QuizMode(), 5)

	for i := 0; i < 5; i++ {
		out, err := sess.SubmitAnswer("yes ", 15)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if !out.Correct {
			t.Fatalf("submit %d: evaluated incorrect", i)
		}
		if out.PointsAwarded != 250 {
			t.Fatalf("submit %d: points = %d, want 250", i, out.PointsAwarded)
		}
	}

	summary, err := Summarize(sess)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.TotalScore != 1250 {
		t.Errorf("TotalScore = %d, want 1250", summary.TotalScore)
	}
	if summary.Accuracy != 100 {
		t.Errorf("Accuracy = %v, want 100", summary.Accuracy)
	}
	if summary.CorrectCount != 5 || summary.IncorrectCount != 0 {
		t.Errorf("counts = %d/%d, want 5/0", summary.CorrectCount, summary.IncorrectCount)
	}
}

func TestSessionStreakResetsOnMiss(t *testing.T) {
	sess := freeTextSession(t, PuzzleMode(), 4)

	answers := []string{"YES", "YES", "no", "YES"}
	wantStreaks := []int{1, 2, 0, 1}

	for i, ans := range answers {
		if _, err := sess.SubmitAnswer(ans, 0); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if got := sess.Streak(); got != wantStreaks[i] {
			t.Errorf("after answer %d: Streak() = %d, want %d", i+1, got, wantStreaks[i])
		}
	}

	if sess.BestStreak() != 2 {
		t.Errorf("BestStreak() = %d, want 2", sess.BestStreak())
	}
}

func TestSessionTotalScoreMonotonic(t *testing.T) {
	sess := freeTextSession(t, QuizMode(), 6)

	answers := []string{"YES", "no", "YES", "no", "YES", "YES"}
	prev := 0
	sum := 0

	for i, ans := range answers {
		out, err := sess.SubmitAnswer(ans, 8)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		sum += out.PointsAwarded
		if sess.TotalScore() < prev {
			t.Fatalf("after answer %d: TotalScore decreased %d → %d", i+1, prev, sess.TotalScore())
		}
		if sess.TotalScore() != sum {
			t.Fatalf("after answer %d: TotalScore = %d, want running sum %d", i+1, sess.TotalScore(), sum)
		}
		prev = sess.TotalScore()
	}
}

func TestSessionTerminalState(t *testing.T) {
	sess := freeTextSession(t, PuzzleMode(), 2)

	if _, err := Summarize(sess); err != ErrSessionNotCompleted {
		t.Errorf("Summarize(active) err = %v, want ErrSessionNotCompleted", err)
	}

	sess.SubmitAnswer("YES", 0)
	sess.SubmitAnswer("YES", 0)

	if _, err := sess.SubmitAnswer("YES", 0); err != ErrSessionCompleted {
		t.Errorf("Submit after completion err = %v, want ErrSessionCompleted", err)
	}
	if err := sess.Select("YES"); err != ErrSessionCompleted {
		t.Errorf("Select after completion err = %v, want ErrSessionCompleted", err)
	}
	if _, err := sess.RevealHint(); err != ErrSessionCompleted {
		t.Errorf("RevealHint after completion err = %v, want ErrSessionCompleted", err)
	}
}

func TestSessionHintPenaltyAppliedOnce(t *testing.T) {
	sess := freeTextSession(t, PuzzleMode(), 2)

	hint, err := sess.RevealHint()
	if err != nil {
		t.Fatalf("RevealHint: %v", err)
	}
	if hint == "" {
		t.Fatal("RevealHint returned empty hint")
	}

	out, err := sess.SubmitAnswer("YES", 0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !out.UsedHint {
		t.Error("outcome UsedHint = false, want true")
	}
	if out.PointsAwarded != 80 {
		t.Errorf("points with hint = %d, want 80", out.PointsAwarded)
	}

	// Hint flag resets for the next question.
	out, err = sess.SubmitAnswer("YES", 0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.UsedHint {
		t.Error("hint flag leaked into next question")
	}
	if out.PointsAwarded != 100 {
		t.Errorf("points without hint = %d, want 100", out.PointsAwarded)
	}
}

func TestSessionBlankSubmissionIncorrect(t *testing.T) {
	sess := freeTextSession(t, QuizMode(), 1)

	// Timer expiry auto-submits with nothing selected.
	out, err := sess.Submit(0)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Correct {
		t.Error("blank submission evaluated correct")
	}
	if out.PointsAwarded != 0 {
		t.Errorf("blank submission points = %d, want 0", out.PointsAwarded)
	}
	if out.TimeRemainingSeconds != 0 {
		t.Errorf("TimeRemainingSeconds = %d, want 0", out.TimeRemainingSeconds)
	}
}

func TestSessionNegativeTimeClamped(t *testing.T) {
	sess := freeTextSession(t, QuizMode(), 1)

	out, err := sess.SubmitAnswer("YES", -3)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.TimeRemainingSeconds != 0 {
		t.Errorf("TimeRemainingSeconds = %d, want clamped 0", out.TimeRemainingSeconds)
	}
	// Clamped expiry still scores the slowest bucket.
	if out.PointsAwarded != 100 {
		t.Errorf("points = %d, want 100", out.PointsAwarded)
	}
}

func TestSessionSelectThenSubmit(t *testing.T) {
	sess := freeTextSession(t, QuizMode(), 1)

	if err := sess.Select("no"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	// Changing the pick before submit is allowed.
	if err := sess.Select("yes"); err != nil {
		t.Fatalf("Select: %v", err)
	}

	out, err := sess.Submit(12)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !out.Correct {
		t.Error("re-selected answer evaluated incorrect")
	}
}

func TestSessionReviewNavigation(t *testing.T) {
	sess := freeTextSession(t, PuzzleMode(), 3)

	sess.SubmitAnswer("YES", 0)
	sess.SubmitAnswer("no", 0)

	// Live question is index 2; page back to the first resolved one.
	sess.Back()
	sess.Back()

	snap := sess.Snapshot()
	if snap.ViewIndex != 0 {
		t.Fatalf("ViewIndex = %d, want 0", snap.ViewIndex)
	}
	if snap.Outcome == nil {
		t.Fatal("resolved snapshot missing outcome")
	}
	if !snap.Outcome.Correct {
		t.Error("first outcome should be correct")
	}
	if snap.Explanation == "" {
		t.Error("resolved snapshot missing explanation")
	}

	// Forward returns to the live question where no outcome exists yet.
	sess.Forward()
	sess.Forward()
	snap = sess.Snapshot()
	if snap.ViewIndex != 2 {
		t.Fatalf("ViewIndex = %d, want 2", snap.ViewIndex)
	}
	if snap.Outcome != nil {
		t.Error("live snapshot should not carry an outcome")
	}

	// Forward never runs past the live question.
	sess.Forward()
	if got := sess.Snapshot().ViewIndex; got != 2 {
		t.Errorf("ViewIndex after extra Forward = %d, want 2", got)
	}
}

func TestSessionSnapshotHidesHintUntilRevealed(t *testing.T) {
	sess := freeTextSession(t, PuzzleMode(), 1)

	snap := sess.Snapshot()
	if snap.Hint != "" || snap.HintRevealed {
		t.Error("hint exposed before reveal")
	}

	if _, err := sess.RevealHint(); err != nil {
		t.Fatalf("RevealHint: %v", err)
	}
	snap = sess.Snapshot()
	if !snap.HintRevealed || snap.Hint == "" {
		t.Error("hint missing after reveal")
	}
}
