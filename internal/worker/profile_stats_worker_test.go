package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edugram/edugram-backend/internal/model"
	"github.com/edugram/edugram-backend/internal/repository"
)

// fakeStatsStore scripts the bulk and per-row update outcomes so the
// fallback path can be exercised without a database.
type fakeStatsStore struct {
	batchErr   error
	rowErrs    map[int]error
	batchCalls int
	rowCalls   []int
}

func (f *fakeStatsStore) ApplyStatsBatch(_ context.Context, _ []repository.StatsDelta) error {
	f.batchCalls++
	return f.batchErr
}

func (f *fakeStatsStore) ApplyStats(_ context.Context, d repository.StatsDelta) error {
	f.rowCalls = append(f.rowCalls, d.UserID)
	return f.rowErrs[d.UserID]
}

func statsBatch(userIDs ...int) []*model.ProfileStatsPayload {
	batch := make([]*model.ProfileStatsPayload, len(userIDs))
	for i, id := range userIDs {
		batch[i] = &model.ProfileStatsPayload{
			UserID:            id,
			ScoreDelta:        100 * id,
			QuestionsAnswered: 5,
			CorrectAnswers:    4,
		}
	}
	return batch
}

func userIDs(batch []*model.ProfileStatsPayload) []int {
	ids := make([]int, len(batch))
	for i, p := range batch {
		ids[i] = p.UserID
	}
	return ids
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyDeltasBulkSuccess(t *testing.T) {
	store := &fakeStatsStore{}
	w := &ProfileStatsWorker{users: store, log: zerolog.Nop()}

	batch := statsBatch(1, 2, 3)
	applied, failed := w.applyDeltas(context.Background(), batch)

	if !equalIDs(userIDs(applied), []int{1, 2, 3}) {
		t.Fatalf("applied = %v, want all of [1 2 3]", userIDs(applied))
	}
	if len(failed) != 0 {
		t.Fatalf("failed = %v, want none", userIDs(failed))
	}
	if store.batchCalls != 1 || len(store.rowCalls) != 0 {
		t.Fatalf("batchCalls=%d rowCalls=%v, want 1 bulk call and no per-row calls",
			store.batchCalls, store.rowCalls)
	}
}

// When the bulk update fails, rows that succeed individually must still be
// reported as applied so their deltas reach the leaderboard, and only the
// rows that also fail individually go back to the queue.
func TestApplyDeltasFallbackReportsAppliedRows(t *testing.T) {
	store := &fakeStatsStore{
		batchErr: errors.New("deadlock detected"),
		rowErrs:  map[int]error{2: errors.New("connection reset")},
	}
	w := &ProfileStatsWorker{users: store, log: zerolog.Nop()}

	batch := statsBatch(1, 2, 3)
	applied, failed := w.applyDeltas(context.Background(), batch)

	if !equalIDs(userIDs(applied), []int{1, 3}) {
		t.Fatalf("applied = %v, want [1 3]", userIDs(applied))
	}
	if !equalIDs(userIDs(failed), []int{2}) {
		t.Fatalf("failed = %v, want [2]", userIDs(failed))
	}
	if !equalIDs(store.rowCalls, []int{1, 2, 3}) {
		t.Fatalf("rowCalls = %v, want every row retried", store.rowCalls)
	}
}

func TestApplyDeltasFallbackAllRowsFail(t *testing.T) {
	rowErr := errors.New("server closed the connection")
	store := &fakeStatsStore{
		batchErr: errors.New("deadlock detected"),
		rowErrs:  map[int]error{7: rowErr, 8: rowErr},
	}
	w := &ProfileStatsWorker{users: store, log: zerolog.Nop()}

	applied, failed := w.applyDeltas(context.Background(), statsBatch(7, 8))

	if len(applied) != 0 {
		t.Fatalf("applied = %v, want none", userIDs(applied))
	}
	if !equalIDs(userIDs(failed), []int{7, 8}) {
		t.Fatalf("failed = %v, want [7 8]", userIDs(failed))
	}
}
