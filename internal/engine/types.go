package engine

// Difficulty classifies a question's weight band.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Kind distinguishes how an answer is captured and judged.
type Kind string

const (
	KindMultipleChoice Kind = "MULTIPLE_CHOICE"
	KindFreeText       Kind = "FREE_TEXT"
)

// Question is the immutable play unit loaded at session-build time.
// For multiple choice, ExpectedAnswer is one of Options verbatim.
// For free text, ExpectedAnswer is the canonical uppercase answer.
type Question struct {
	ID               string     `json:"id"`
	Prompt           string     `json:"prompt"`
	Kind             Kind       `json:"kind"`
	Options          []string   `json:"options,omitempty"`
	ExpectedAnswer   string     `json:"-"`
	Difficulty       Difficulty `json:"difficulty"`
	Hint             string     `json:"-"`
	Explanation      string     `json:"explanation,omitempty"`
	TimeLimitSeconds int        `json:"time_limit_seconds,omitempty"`
}

// Outcome records how one question in a session was resolved. Immutable
// once appended.
type Outcome struct {
	QuestionID           string `json:"question_id"`
	Correct              bool   `json:"correct"`
	UsedHint             bool   `json:"used_hint"`
	PointsAwarded        int    `json:"points_awarded"`
	TimeRemainingSeconds int    `json:"time_remaining_seconds"`
}

// State enumerates session lifecycle states. Completed is terminal.
type State string

const (
	StateActive    State = "ACTIVE"
	StateCompleted State = "COMPLETED"
)

// SessionSummary is the folded result of a completed session.
type SessionSummary struct {
	SessionID      string  `json:"session_id"`
	TotalScore     int     `json:"total_score"`
	CorrectCount   int     `json:"correct_count"`
	IncorrectCount int     `json:"incorrect_count"`
	Accuracy       float64 `json:"accuracy"`
	QuestionCount  int     `json:"question_count"`
	BestStreak     int     `json:"best_streak"`
}

// Snapshot is the read-only view the display boundary renders from.
// ViewIndex trails CurrentIndex when the user pages back through
// already-resolved questions.
type Snapshot struct {
	SessionID     string    `json:"session_id"`
	State         State     `json:"state"`
	CurrentIndex  int       `json:"current_index"`
	ViewIndex     int       `json:"view_index"`
	QuestionCount int       `json:"question_count"`
	TotalScore    int       `json:"total_score"`
	Streak        int       `json:"streak"`
	Question      *Question `json:"question,omitempty"`
	Selected      string    `json:"selected,omitempty"`
	HintRevealed  bool      `json:"hint_revealed"`
	Hint          string    `json:"hint,omitempty"`
	Outcome       *Outcome  `json:"outcome,omitempty"`
	Explanation   string    `json:"explanation,omitempty"`
	// TimeRemainingSeconds is filled by the session controller that owns
	// the countdown; the engine itself does not track wall-clock time.
	TimeRemainingSeconds int `json:"time_remaining_seconds"`
}
