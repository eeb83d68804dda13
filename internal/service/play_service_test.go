package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/edugram/edugram-backend/internal/engine"
)

// shortFuseMode is quiz scoring with a one-second countdown so expiry tests
// finish quickly.
func shortFuseMode() engine.ModeConfig {
	m := engine.QuizMode()
	m.TimeLimitSeconds = 1
	return m
}

// playServiceWithSession wires a PlayService around one in-flight session
// without any storage behind it. The session has enough questions that a
// single expiry never completes it.
func playServiceWithSession(t *testing.T, n int) (*PlayService, *activeSession) {
	t.Helper()

	pool := make([]engine.Question, n)
	for i := range pool {
		pool[i] = engine.Question{
			ID:             string(rune('a' + i)),
			Prompt:         "prompt",
			Kind:           engine.KindFreeText,
			ExpectedAnswer: "YES",
			Difficulty:     engine.DifficultyEasy,
		}
	}

	mode := shortFuseMode()
	sess, err := engine.BuildSession("sub", "mod", n, pool, mode, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("BuildSession: %v", err)
	}

	as := &activeSession{
		userID: 1,
		sess:   sess,
		mode:   mode,
		events: make(chan PlayEvent, 8),
	}
	s := &PlayService{
		log:    zerolog.Nop(),
		active: map[int]*activeSession{1: as},
	}
	return s, as
}

func TestTimerExpiryAutoSubmitsBlank(t *testing.T) {
	s, as := playServiceWithSession(t, 3)

	as.mu.Lock()
	s.armTimer(as)
	as.mu.Unlock()

	var ev PlayEvent
	select {
	case ev = <-as.events:
	case <-time.After(3 * time.Second):
		t.Fatal("no event after the countdown elapsed")
	}

	if ev.Type != PlayEventExpired {
		t.Fatalf("event type = %q, want %q", ev.Type, PlayEventExpired)
	}

	as.mu.Lock()
	defer as.mu.Unlock()
	outcomes := as.sess.Outcomes()
	if len(outcomes) != 1 {
		t.Fatalf("outcomes = %d, want 1", len(outcomes))
	}
	if outcomes[0].Correct || outcomes[0].PointsAwarded != 0 {
		t.Fatalf("expiry outcome = %+v, want incorrect with 0 points", outcomes[0])
	}
	if as.sess.CurrentIndex() != 1 {
		t.Fatalf("currentIndex = %d, want 1", as.sess.CurrentIndex())
	}
	if as.timer == nil {
		t.Fatal("countdown for the next question was not armed")
	}
	as.stopTimer()
}

// An expiry callback armed for a question that is no longer current must not
// touch the session.
func TestTimerExpiryIgnoresStaleIndex(t *testing.T) {
	s, as := playServiceWithSession(t, 3)

	s.onExpire(as, 2)

	as.mu.Lock()
	defer as.mu.Unlock()
	if n := len(as.sess.Outcomes()); n != 0 {
		t.Fatalf("outcomes = %d, want 0", n)
	}
	select {
	case ev := <-as.events:
		t.Fatalf("unexpected event %q", ev.Type)
	default:
	}
}

// A submit that races the countdown wins: the late expiry callback for the
// already-resolved question is a no-op.
func TestTimerExpiryRacedSubmitIsNoOp(t *testing.T) {
	s, as := playServiceWithSession(t, 3)

	if _, _, err := s.Submit(context.Background(), 1, "YES"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	as.mu.Lock()
	as.stopTimer()
	as.mu.Unlock()

	s.onExpire(as, 0)

	as.mu.Lock()
	defer as.mu.Unlock()
	outcomes := as.sess.Outcomes()
	if len(outcomes) != 1 {
		t.Fatalf("outcomes = %d, want 1", len(outcomes))
	}
	if !outcomes[0].Correct {
		t.Fatal("submitted outcome was overwritten by the stale expiry")
	}
	select {
	case ev := <-as.events:
		t.Fatalf("unexpected event %q", ev.Type)
	default:
	}
}

// A countdown callback that fires after Abandon tore the session down must
// not submit or publish into the closed event channel.
func TestTimerExpiryAfterAbandonIsNoOp(t *testing.T) {
	s, as := playServiceWithSession(t, 3)

	as.mu.Lock()
	s.armTimer(as)
	as.mu.Unlock()

	if err := s.Abandon(1); err != nil {
		t.Fatalf("Abandon: %v", err)
	}

	s.onExpire(as, 0)

	as.mu.Lock()
	defer as.mu.Unlock()
	if n := len(as.sess.Outcomes()); n != 0 {
		t.Fatalf("outcomes = %d, want 0", n)
	}
}
