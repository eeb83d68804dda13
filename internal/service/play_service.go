package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edugram/edugram-backend/internal/config"
	"github.com/edugram/edugram-backend/internal/engine"
	"github.com/edugram/edugram-backend/internal/model"
	"github.com/edugram/edugram-backend/internal/repository"
)

// Play service errors.
var (
	ErrNoActiveSession = errors.New("no active play session")
	ErrModuleNotFound  = errors.New("module not found")
)

// PlayEventType labels the server-pushed events of a live session.
type PlayEventType string

const (
	PlayEventState     PlayEventType = "state"
	PlayEventExpired   PlayEventType = "expired"
	PlayEventCompleted PlayEventType = "completed"
)

// PlayEvent is pushed to stream subscribers whenever a session changes
// without a client request, e.g. when a question timer expires.
type PlayEvent struct {
	Type     PlayEventType          `json:"type"`
	Snapshot engine.Snapshot        `json:"snapshot"`
	Summary  *engine.SessionSummary `json:"summary,omitempty"`
}

// activeSession is one user's live session plus its countdown and event feed.
type activeSession struct {
	mu     sync.Mutex
	userID int
	sess   *engine.Session
	mode   engine.ModeConfig
	timer  *engine.Countdown
	events chan PlayEvent
	closed bool
}

// PlayService owns all in-flight sessions, one per user. It drives the
// engine, runs the authoritative question timers, and on completion fans
// the results out to Postgres, the progress tracker, and the stats queue.
type PlayService struct {
	cfg         *config.Config
	catalog     *CatalogService
	sessionRepo *repository.PlaySessionRepository
	progress    *ProgressService
	agg         *engine.Aggregator
	log         zerolog.Logger

	mu     sync.Mutex
	active map[int]*activeSession
}

// NewPlayService creates a PlayService.
func NewPlayService(
	cfg *config.Config,
	catalog *CatalogService,
	sessionRepo *repository.PlaySessionRepository,
	progress *ProgressService,
	agg *engine.Aggregator,
	log zerolog.Logger,
) *PlayService {
	return &PlayService{
		cfg:         cfg,
		catalog:     catalog,
		sessionRepo: sessionRepo,
		progress:    progress,
		agg:         agg,
		log:         log.With().Str("component", "play").Logger(),
		active:      make(map[int]*activeSession),
	}
}

// ─── Session lifecycle ──────────────────────────────────────────────────────

// Start builds a fresh session for the user, replacing any previous one.
func (s *PlayService) Start(ctx context.Context, userID int, req model.StartSessionRequest) (engine.Snapshot, error) {
	moduleID, err := uuid.Parse(req.ModuleID)
	if err != nil {
		return engine.Snapshot{}, ErrModuleNotFound
	}

	module, err := s.catalog.GetModule(ctx, moduleID)
	if err != nil {
		return engine.Snapshot{}, ErrModuleNotFound
	}

	pool, err := s.catalog.QuestionPool(ctx, moduleID)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("load pool: %w", err)
	}

	modeName := module.DefaultMode
	if req.Mode != "" {
		modeName = req.Mode
	}
	mode := engine.ModeByName(modeName)

	count := s.cfg.SessionQuestionCount
	if req.Count > 0 {
		count = req.Count
	}

	var rng *rand.Rand
	if req.Seed != 0 {
		rng = rand.New(rand.NewSource(req.Seed))
	}

	sess, err := engine.BuildSession(module.SubjectID.String(), moduleID.String(), count, pool, mode, rng)
	if err != nil {
		return engine.Snapshot{}, err
	}

	as := &activeSession{
		userID: userID,
		sess:   sess,
		mode:   mode,
		events: make(chan PlayEvent, 8),
	}

	s.mu.Lock()
	prev, hadPrev := s.active[userID]
	s.active[userID] = as
	s.mu.Unlock()

	if hadPrev {
		prev.mu.Lock()
		prev.stopTimer()
		prev.closed = true
		close(prev.events)
		prev.mu.Unlock()
	}

	as.mu.Lock()
	s.armTimer(as)
	snap := as.snapshotLocked()
	as.mu.Unlock()

	s.log.Info().
		Int("user_id", userID).
		Str("session_id", sess.ID).
		Str("mode", mode.Name).
		Int("questions", snap.QuestionCount).
		Msg("session started")
	return snap, nil
}

// Snapshot returns the current view of the user's session.
func (s *PlayService) Snapshot(userID int) (engine.Snapshot, error) {
	as, err := s.lookup(userID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	as.mu.Lock()
	defer as.mu.Unlock()
	return as.snapshotLocked(), nil
}

// Select records a provisional answer choice on the current question.
func (s *PlayService) Select(userID int, answer string) (engine.Snapshot, error) {
	as, err := s.lookup(userID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	as.mu.Lock()
	defer as.mu.Unlock()
	if err := as.sess.Select(answer); err != nil {
		return engine.Snapshot{}, err
	}
	return as.snapshotLocked(), nil
}

// RevealHint marks the current question's hint as used, which costs points.
func (s *PlayService) RevealHint(userID int) (engine.Snapshot, error) {
	as, err := s.lookup(userID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	as.mu.Lock()
	defer as.mu.Unlock()
	if _, err := as.sess.RevealHint(); err != nil {
		return engine.Snapshot{}, err
	}
	return as.snapshotLocked(), nil
}

// Submit commits an answer for the current question using the server-side
// remaining time. On the final question the session completes and the
// returned summary is non-nil.
func (s *PlayService) Submit(ctx context.Context, userID int, answer string) (engine.Snapshot, *engine.SessionSummary, error) {
	as, err := s.lookup(userID)
	if err != nil {
		return engine.Snapshot{}, nil, err
	}

	as.mu.Lock()
	defer as.mu.Unlock()
	return s.submitLocked(ctx, as, answer)
}

// Back pages the review cursor to an earlier resolved question.
func (s *PlayService) Back(userID int) (engine.Snapshot, error) {
	as, err := s.lookup(userID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	as.mu.Lock()
	defer as.mu.Unlock()
	as.sess.Back()
	return as.snapshotLocked(), nil
}

// Forward pages the review cursor toward the live question.
func (s *PlayService) Forward(userID int) (engine.Snapshot, error) {
	as, err := s.lookup(userID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	as.mu.Lock()
	defer as.mu.Unlock()
	as.sess.Forward()
	return as.snapshotLocked(), nil
}

// Result returns the summary of the user's completed session. It fails with
// engine.ErrSessionNotCompleted while questions remain.
func (s *PlayService) Result(userID int) (*engine.SessionSummary, error) {
	as, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	as.mu.Lock()
	defer as.mu.Unlock()
	summary, err := engine.Summarize(as.sess)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Abandon discards the user's session without recording anything.
func (s *PlayService) Abandon(userID int) error {
	s.mu.Lock()
	as, ok := s.active[userID]
	delete(s.active, userID)
	s.mu.Unlock()
	if !ok {
		return ErrNoActiveSession
	}
	as.mu.Lock()
	as.stopTimer()
	as.closed = true
	close(as.events)
	as.mu.Unlock()
	return nil
}

// Events returns the server-push feed for the user's live session.
func (s *PlayService) Events(userID int) (<-chan PlayEvent, error) {
	as, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	return as.events, nil
}

// ─── Internals ──────────────────────────────────────────────────────────────

func (s *PlayService) lookup(userID int) (*activeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	as, ok := s.active[userID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return as, nil
}

// submitLocked evaluates an answer while holding the session lock.
func (s *PlayService) submitLocked(ctx context.Context, as *activeSession, answer string) (engine.Snapshot, *engine.SessionSummary, error) {
	remaining := 0
	if as.timer != nil {
		remaining = as.timer.Remaining()
	}
	as.stopTimer()

	if _, err := as.sess.SubmitAnswer(answer, remaining); err != nil {
		return engine.Snapshot{}, nil, err
	}

	if as.sess.State() == engine.StateCompleted {
		summary := s.finalize(ctx, as)
		return as.snapshotLocked(), summary, nil
	}

	s.armTimer(as)
	return as.snapshotLocked(), nil, nil
}

// armTimer starts the countdown for the current question, if it has one.
// Caller holds as.mu.
func (s *PlayService) armTimer(as *activeSession) {
	q, ok := as.sess.Current()
	if !ok {
		return
	}
	limit := as.mode.LimitFor(q)
	if limit <= 0 {
		as.timer = nil
		return
	}

	index := as.sess.CurrentIndex()
	as.timer = engine.NewCountdown(limit, func() {
		s.onExpire(as, index)
	})
}

// onExpire force-submits a blank answer when a question timer fires.
func (s *PlayService) onExpire(as *activeSession, index int) {
	as.mu.Lock()
	defer as.mu.Unlock()

	// A submit or abandon may have raced the timer; only expire the
	// question it was armed for.
	if as.closed || as.sess.State() != engine.StateActive || as.sess.CurrentIndex() != index {
		return
	}

	snap, summary, err := s.submitLocked(context.Background(), as, "")
	if err != nil {
		s.log.Error().Err(err).
			Int("user_id", as.userID).
			Str("session_id", as.sess.ID).
			Msg("timer expiry submit failed")
		return
	}

	ev := PlayEvent{Type: PlayEventExpired, Snapshot: snap}
	if summary != nil {
		ev.Type = PlayEventCompleted
		ev.Summary = summary
	}
	as.publish(ev)
}

// finalize runs exactly once per completed session: stats to the queue via
// the aggregator, the session row to Postgres, the module into the user's
// completion set. Caller holds as.mu.
func (s *PlayService) finalize(ctx context.Context, as *activeSession) *engine.SessionSummary {
	summary, err := s.agg.Finalize(ctx, as.userID, as.sess)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", as.sess.ID).Msg("finalize failed")
		return nil
	}

	subjectID, _ := uuid.Parse(as.sess.SubjectID)
	moduleID, _ := uuid.Parse(as.sess.ModuleID)
	rec := &model.PlaySessionRecord{
		ID:            as.sess.ID,
		UserID:        as.userID,
		SubjectID:     subjectID,
		ModuleID:      moduleID,
		Mode:          as.mode.Name,
		TotalScore:    summary.TotalScore,
		CorrectCount:  summary.CorrectCount,
		QuestionCount: summary.QuestionCount,
		Accuracy:      summary.Accuracy,
		BestStreak:    summary.BestStreak,
		StartedAt:     as.sess.StartedAt,
		CompletedAt:   time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, rec); err != nil {
		s.log.Error().Err(err).Str("session_id", as.sess.ID).Msg("persist session failed")
	}

	if err := s.progress.MarkCompleted(ctx, as.userID, as.sess.ModuleID); err != nil {
		s.log.Warn().Err(err).Str("session_id", as.sess.ID).Msg("mark completed failed")
	}

	s.log.Info().
		Int("user_id", as.userID).
		Str("session_id", as.sess.ID).
		Int("score", summary.TotalScore).
		Float64("accuracy", summary.Accuracy).
		Msg("session completed")
	return &summary
}

// snapshotLocked takes an engine snapshot and stamps it with the countdown's
// remaining time. Caller holds as.mu.
func (as *activeSession) snapshotLocked() engine.Snapshot {
	snap := as.sess.Snapshot()
	if as.timer != nil {
		snap.TimeRemainingSeconds = as.timer.Remaining()
	}
	return snap
}

func (as *activeSession) stopTimer() {
	if as.timer != nil {
		as.timer.Stop()
		as.timer = nil
	}
}

// publish sends an event without ever blocking the session lock holder.
// Caller holds as.mu.
func (as *activeSession) publish(ev PlayEvent) {
	if as.closed {
		return
	}
	select {
	case as.events <- ev:
	default:
	}
}
