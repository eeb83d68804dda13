package engine

import "time"

// Session is one play-through of a fixed, randomly selected question set.
// It is exclusively owned by the controller that created it and is not safe
// for concurrent mutation; callers that share one across goroutines must
// serialize access themselves.
//
// Invariants held while Active:
//   - len(outcomes) == currentIndex
//   - streak resets to 0 the moment an incorrect outcome is appended
//   - totalScore is monotonically non-decreasing
//
// The session transitions to Completed exactly once, when the last question
// resolves. Completed is terminal: every further mutation fails with
// ErrSessionCompleted.
type Session struct {
	ID        string
	SubjectID string
	ModuleID  string
	Mode      ModeConfig
	StartedAt time.Time

	questions    []Question
	answers      map[int]string // question index → submitted answer
	outcomes     []Outcome
	currentIndex int
	viewIndex    int
	streak       int
	bestStreak   int
	totalScore   int
	hintRevealed bool
	state        State
	reconciled   bool
}

// ─── Read accessors ─────────────────────────────────────────────────

func (s *Session) State() State       { return s.state }
func (s *Session) CurrentIndex() int  { return s.currentIndex }
func (s *Session) QuestionCount() int { return len(s.questions) }
func (s *Session) Streak() int        { return s.streak }
func (s *Session) BestStreak() int    { return s.bestStreak }
func (s *Session) TotalScore() int    { return s.totalScore }

// Questions returns a copy of the session's fixed question order.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Outcomes returns a copy of the resolved outcomes so far.
func (s *Session) Outcomes() []Outcome {
	out := make([]Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// Current returns the question awaiting an answer. ok is false once the
// session has completed.
func (s *Session) Current() (Question, bool) {
	if s.state != StateActive {
		return Question{}, false
	}
	return s.questions[s.currentIndex], true
}

// ─── User actions ───────────────────────────────────────────────────

// Select records a tentative answer for the current question. It can be
// called repeatedly before Submit (the user changing their pick).
func (s *Session) Select(answer string) error {
	if s.state == StateCompleted {
		return ErrSessionCompleted
	}
	s.answers[s.currentIndex] = answer
	return nil
}

// RevealHint exposes the current question's hint and flags the question so
// the hint penalty applies if it is then answered correctly. Questions
// without a hint reveal nothing and incur no penalty.
func (s *Session) RevealHint() (string, error) {
	if s.state == StateCompleted {
		return "", ErrSessionCompleted
	}
	hint := s.questions[s.currentIndex].Hint
	if hint != "" {
		s.hintRevealed = true
	}
	return hint, nil
}

// Submit resolves the current question using the answer recorded by Select.
// A blank or missing selection resolves as incorrect; the evaluator never
// rejects input. timeRemainingSeconds is the countdown value at submission,
// 0 for a timer-expiry auto-submit. Negative values are clamped to 0.
//
// The returned Outcome is immutable and already folded into the running
// totals. Submitting the final question completes the session.
func (s *Session) Submit(timeRemainingSeconds int) (Outcome, error) {
	if s.state == StateCompleted {
		return Outcome{}, ErrSessionCompleted
	}
	if timeRemainingSeconds < 0 {
		timeRemainingSeconds = 0
	}

	q := s.questions[s.currentIndex]
	correct := Evaluate(q, s.answers[s.currentIndex])

	outcome := Outcome{
		QuestionID:           q.ID,
		Correct:              correct,
		UsedHint:             s.hintRevealed,
		PointsAwarded:        Score(s.Mode, correct, s.hintRevealed, timeRemainingSeconds),
		TimeRemainingSeconds: timeRemainingSeconds,
	}

	s.outcomes = append(s.outcomes, outcome)
	s.totalScore += outcome.PointsAwarded
	s.streak = NextStreak(s.streak, correct)
	if s.streak > s.bestStreak {
		s.bestStreak = s.streak
	}

	s.hintRevealed = false
	s.currentIndex++
	s.viewIndex = s.currentIndex

	if s.currentIndex == len(s.questions) {
		s.state = StateCompleted
		s.viewIndex = len(s.questions) - 1
	}

	return outcome, nil
}

// SubmitAnswer is Select followed by Submit in one step, for callers that
// don't stage a selection first (free-text input, WebSocket submits).
func (s *Session) SubmitAnswer(answer string, timeRemainingSeconds int) (Outcome, error) {
	if err := s.Select(answer); err != nil {
		return Outcome{}, err
	}
	return s.Submit(timeRemainingSeconds)
}

// Back pages the view cursor to the previous resolved question so the user
// can re-read its explanation. It never moves the live question.
func (s *Session) Back() {
	if s.viewIndex > 0 {
		s.viewIndex--
	}
}

// Forward pages the view cursor toward the live question (or the last
// question once completed).
func (s *Session) Forward() {
	max := s.currentIndex
	if s.state == StateCompleted {
		max = len(s.questions) - 1
	}
	if s.viewIndex < max {
		s.viewIndex++
	}
}

// ─── Display boundary ───────────────────────────────────────────────

// Snapshot renders the session state for the display boundary. For a
// resolved question (view cursor behind the live one, or session complete)
// it includes the outcome and explanation; for the live question it
// includes the staged selection and hint state. Expected answers are never
// exposed.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:     s.ID,
		State:         s.state,
		CurrentIndex:  s.currentIndex,
		ViewIndex:     s.viewIndex,
		QuestionCount: len(s.questions),
		TotalScore:    s.totalScore,
		Streak:        s.streak,
	}

	if len(s.questions) == 0 {
		return snap
	}

	q := s.questions[s.viewIndex]
	snap.Question = &q
	snap.Selected = s.answers[s.viewIndex]

	resolved := s.viewIndex < len(s.outcomes)
	if resolved {
		outcome := s.outcomes[s.viewIndex]
		snap.Outcome = &outcome
		snap.Explanation = q.Explanation
		snap.HintRevealed = outcome.UsedHint
		return snap
	}

	snap.HintRevealed = s.hintRevealed
	if s.hintRevealed {
		snap.Hint = q.Hint
	}
	return snap
}
