package engine

import (
	"context"

	"github.com/rs/zerolog"
)

// ProfileSink receives the totals of a finalized session. Implementations
// are expected to be I/O-bound (remote profile API, queue); the aggregator
// never waits on them.
type ProfileSink interface {
	UpdateStats(ctx context.Context, userID int, summary SessionSummary) error
}

// Aggregator folds completed sessions into summaries and reconciles them
// into the user's persistent profile stats through the sink.
type Aggregator struct {
	sink ProfileSink
	log  zerolog.Logger
}

// NewAggregator creates an Aggregator. sink may be nil, in which case
// summaries are produced without any profile reconciliation.
func NewAggregator(sink ProfileSink, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		sink: sink,
		log:  log.With().Str("component", "aggregator").Logger(),
	}
}

// Summarize computes the session totals without side effects. It fails with
// ErrSessionNotCompleted while the session is still Active.
func Summarize(s *Session) (SessionSummary, error) {
	if s.state != StateCompleted {
		return SessionSummary{}, ErrSessionNotCompleted
	}

	summary := SessionSummary{
		SessionID:     s.ID,
		QuestionCount: len(s.questions),
		BestStreak:    s.bestStreak,
	}
	for _, o := range s.outcomes {
		summary.TotalScore += o.PointsAwarded
		if o.Correct {
			summary.CorrectCount++
		} else {
			summary.IncorrectCount++
		}
	}
	// A built session always has questions; guard anyway so a zero-value
	// session cannot divide by zero.
	if len(s.outcomes) > 0 {
		summary.Accuracy = float64(summary.CorrectCount) / float64(len(s.outcomes)) * 100
	}
	return summary, nil
}

// Finalize produces the session summary and pushes the profile-stat deltas
// to the sink exactly once per session, fire-and-forget: a sink failure is
// logged and never blocks or alters the returned summary. Retrying is the
// sink's business, not the engine's.
func (a *Aggregator) Finalize(ctx context.Context, userID int, s *Session) (SessionSummary, error) {
	summary, err := Summarize(s)
	if err != nil {
		return SessionSummary{}, err
	}

	if a.sink != nil && !s.reconciled {
		s.reconciled = true
		// Detach from the request context so the update survives the
		// response being written.
		bgCtx := context.WithoutCancel(ctx)
		go func() {
			if err := a.sink.UpdateStats(bgCtx, userID, summary); err != nil {
				a.log.Warn().Err(err).
					Int("user_id", userID).
					Str("session_id", s.ID).
					Msg("Profile stats update failed")
			}
		}()
	}

	return summary, nil
}
