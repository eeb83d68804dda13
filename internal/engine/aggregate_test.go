package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingSink struct {
	mu    sync.Mutex
	calls []sinkCall
	fail  error
}

type sinkCall struct {
	userID  int
	summary SessionSummary
}

func (r *recordingSink) UpdateStats(_ context.Context, userID int, summary SessionSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, sinkCall{userID, summary})
	return r.fail
}

func (r *recordingSink) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func completedSession(t *testing.T) *Session {
	t.Helper()
	sess := freeTextSession(t, PuzzleMode(), 3)
	sess.SubmitAnswer("YES", 0)
	sess.SubmitAnswer("no", 0)
	sess.SubmitAnswer("YES", 0)
	return sess
}

func waitForCalls(t *testing.T, sink *recordingSink, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for sink.callCount() < want {
		if time.Now().After(deadline) {
			t.Fatalf("sink calls = %d, want %d", sink.callCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSummarize(t *testing.T) {
	sess := completedSession(t)

	summary, err := Summarize(sess)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.TotalScore != 200 {
		t.Errorf("TotalScore = %d, want 200", summary.TotalScore)
	}
	if summary.CorrectCount != 2 || summary.IncorrectCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", summary.CorrectCount, summary.IncorrectCount)
	}
	wantAcc := float64(2) / 3 * 100
	if summary.Accuracy != wantAcc {
		t.Errorf("Accuracy = %v, want %v", summary.Accuracy, wantAcc)
	}
	if summary.QuestionCount != 3 {
		t.Errorf("QuestionCount = %d, want 3", summary.QuestionCount)
	}
}

func TestSummarizeRequiresCompletion(t *testing.T) {
	sess := freeTextSession(t, PuzzleMode(), 2)

	if _, err := Summarize(sess); err != ErrSessionNotCompleted {
		t.Errorf("err = %v, want ErrSessionNotCompleted", err)
	}

	agg := NewAggregator(&recordingSink{}, zerolog.Nop())
	if _, err := agg.Finalize(context.Background(), 1, sess); err != ErrSessionNotCompleted {
		t.Errorf("Finalize err = %v, want ErrSessionNotCompleted", err)
	}
}

func TestFinalizeReconcilesOnce(t *testing.T) {
	sink := &recordingSink{}
	agg := NewAggregator(sink, zerolog.Nop())
	sess := completedSession(t)

	summary, err := agg.Finalize(context.Background(), 42, sess)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	waitForCalls(t, sink, 1)

	call := sink.calls[0]
	if call.userID != 42 || call.summary != summary {
		t.Errorf("sink call = %+v, want {42 %+v}", call, summary)
	}

	// A second finalize returns the summary again but never re-invokes the sink.
	again, err := agg.Finalize(context.Background(), 42, sess)
	if err != nil {
		t.Fatalf("second Finalize: %v", err)
	}
	if again != summary {
		t.Errorf("second summary = %+v, want %+v", again, summary)
	}
	time.Sleep(50 * time.Millisecond)
	if sink.callCount() != 1 {
		t.Errorf("sink calls = %d, want exactly 1", sink.callCount())
	}
}

func TestFinalizeSinkFailureDoesNotBlockSummary(t *testing.T) {
	sink := &recordingSink{fail: context.DeadlineExceeded}
	agg := NewAggregator(sink, zerolog.Nop())
	sess := completedSession(t)

	summary, err := agg.Finalize(context.Background(), 7, sess)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if summary.TotalScore != 200 {
		t.Errorf("TotalScore = %d, want 200 despite sink failure", summary.TotalScore)
	}
	waitForCalls(t, sink, 1)
}

func TestFinalizeNilSink(t *testing.T) {
	agg := NewAggregator(nil, zerolog.Nop())

	if _, err := agg.Finalize(context.Background(), 1, completedSession(t)); err != nil {
		t.Fatalf("Finalize with nil sink: %v", err)
	}
}
