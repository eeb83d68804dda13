package engine

import "testing"

func TestScoreTimedBuckets(t *testing.T) {
	mode := QuizMode()

	tests := []struct {
		name      string
		remaining int
		usedHint  bool
		want      int
	}{
		{"fast bucket", 15, false, 250},
		{"fast bucket boundary 11s", 11, false, 250},
		{"mid bucket boundary 10s", 10, false, 150},
		{"mid bucket 6s", 6, false, 150},
		{"slow bucket boundary 5s", 5, false, 100},
		{"slow bucket 1s", 1, false, 100},
		{"expiry scores slowest bucket", 0, false, 100},
		{"fast with hint", 15, true, 230},
		{"slow with hint", 2, true, 80},
	}

	for _, tt := range tests {
		if got := Score(mode, true, tt.usedHint, tt.remaining); got != tt.want {
			t.Errorf("%s: Score(remaining=%d, hint=%v) = %d, want %d", tt.name, tt.remaining, tt.usedHint, got, tt.want)
		}
	}
}

func TestScoreIncorrectIsZero(t *testing.T) {
	for _, mode := range []ModeConfig{QuizMode(), PuzzleMode(), RiddleMode(), SudokuMode()} {
		if got := Score(mode, false, false, 20); got != 0 {
			t.Errorf("%s: incorrect score = %d, want 0", mode.Name, got)
		}
		if got := Score(mode, false, true, 0); got != 0 {
			t.Errorf("%s: incorrect with hint score = %d, want 0", mode.Name, got)
		}
	}
}

func TestScoreUntimedBase(t *testing.T) {
	mode := PuzzleMode()

	if got := Score(mode, true, false, 0); got != 100 {
		t.Errorf("untimed correct = %d, want 100", got)
	}
	// Hint used in untimed mode: base 100, penalty 20.
	if got := Score(mode, true, true, 0); got != 80 {
		t.Errorf("untimed correct with hint = %d, want 80", got)
	}
}

func TestScoreFloorDominatesPenalty(t *testing.T) {
	// A base low enough that the penalty would push it below the floor.
	mode := PuzzleMode()
	mode.UntimedBase = 20

	if got := Score(mode, true, true, 0); got != 10 {
		t.Errorf("Score(base=20, hint) = %d, want floor 10", got)
	}
}

func TestScoreCorrectNeverBelowFloor(t *testing.T) {
	modes := []ModeConfig{QuizMode(), PuzzleMode(), RiddleMode(), SudokuMode()}
	for _, mode := range modes {
		for remaining := 0; remaining <= 25; remaining++ {
			for _, hint := range []bool{false, true} {
				if got := Score(mode, true, hint, remaining); got < 10 {
					t.Fatalf("%s: Score(correct, hint=%v, remaining=%d) = %d, below floor", mode.Name, hint, remaining, got)
				}
			}
		}
	}
}

func TestNextStreak(t *testing.T) {
	tests := []struct {
		current int
		correct bool
		want    int
	}{
		{0, true, 1},
		{1, true, 2},
		{7, true, 8},
		{0, false, 0},
		{5, false, 0},
	}

	for _, tt := range tests {
		if got := NextStreak(tt.current, tt.correct); got != tt.want {
			t.Errorf("NextStreak(%d, %v) = %d, want %d", tt.current, tt.correct, got, tt.want)
		}
	}
}

func TestStreakSequence(t *testing.T) {
	// correct, correct, incorrect, correct → 1, 2, 0, 1
	results := []bool{true, true, false, true}
	want := []int{1, 2, 0, 1}

	streak := 0
	for i, correct := range results {
		streak = NextStreak(streak, correct)
		if streak != want[i] {
			t.Errorf("after answer %d: streak = %d, want %d", i+1, streak, want[i])
		}
	}
}

func TestModeLimitFor(t *testing.T) {
	quiz := QuizMode()

	if got := quiz.LimitFor(Question{}); got != 20 {
		t.Errorf("quiz default limit = %d, want 20", got)
	}
	if got := quiz.LimitFor(Question{TimeLimitSeconds: 45}); got != 45 {
		t.Errorf("question override limit = %d, want 45", got)
	}
	if got := PuzzleMode().LimitFor(Question{TimeLimitSeconds: 45}); got != 0 {
		t.Errorf("untimed mode limit = %d, want 0", got)
	}
}
