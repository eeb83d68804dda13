package engine

// ModeConfig parameterizes the one engine for every game type. The quiz,
// puzzle, riddle and sudoku screens all drive the same session flow and
// differ only in these constants.
type ModeConfig struct {
	Name string `json:"name"`

	// Timed enables the per-question countdown and time-bucketed scoring.
	Timed bool `json:"timed"`

	// TimeLimitSeconds is the default countdown applied when a question
	// does not carry its own limit. Ignored when Timed is false.
	TimeLimitSeconds int `json:"time_limit_seconds"`

	// Timed base-score buckets by remaining seconds at submission.
	FastBase int `json:"fast_base"` // remaining > FastThreshold
	MidBase  int `json:"mid_base"`  // MidThreshold < remaining <= FastThreshold
	SlowBase int `json:"slow_base"` // everything else, including expiry

	FastThreshold int `json:"fast_threshold"`
	MidThreshold  int `json:"mid_threshold"`

	// UntimedBase is the flat base for untimed modes.
	UntimedBase int `json:"untimed_base"`

	// HintPenalty is subtracted from the base when the hint was revealed.
	HintPenalty int `json:"hint_penalty"`

	// ScoreFloor is the minimum award for any correct answer.
	ScoreFloor int `json:"score_floor"`
}

// LimitFor returns the countdown for one question: the question's own limit
// when set, the mode default otherwise. Zero means no countdown (untimed).
func (m ModeConfig) LimitFor(q Question) int {
	if !m.Timed {
		return 0
	}
	if q.TimeLimitSeconds > 0 {
		return q.TimeLimitSeconds
	}
	return m.TimeLimitSeconds
}

// QuizMode is the timed mode: 20s per question, 250/150/100 buckets.
func QuizMode() ModeConfig {
	return ModeConfig{
		Name:             "quiz",
		Timed:            true,
		TimeLimitSeconds: 20,
		FastBase:         250,
		MidBase:          150,
		SlowBase:         100,
		FastThreshold:    10,
		MidThreshold:     5,
		UntimedBase:      100,
		HintPenalty:      20,
		ScoreFloor:       10,
	}
}

// PuzzleMode is the untimed mode shared by puzzle screens: flat base 100.
func PuzzleMode() ModeConfig {
	return ModeConfig{
		Name:        "puzzle",
		UntimedBase: 100,
		HintPenalty: 20,
		ScoreFloor:  10,
	}
}

// RiddleMode and SudokuMode share the puzzle constants under their own
// names so session records keep the game type they were played as.
func RiddleMode() ModeConfig {
	m := PuzzleMode()
	m.Name = "riddle"
	return m
}

func SudokuMode() ModeConfig {
	m := PuzzleMode()
	m.Name = "sudoku"
	return m
}

// ModeByName resolves a mode identifier from the API surface.
// Unknown names fall back to quiz, the most restrictive mode.
func ModeByName(name string) ModeConfig {
	switch name {
	case "puzzle":
		return PuzzleMode()
	case "riddle":
		return RiddleMode()
	case "sudoku":
		return SudokuMode()
	default:
		return QuizMode()
	}
}
