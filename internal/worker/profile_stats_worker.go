package worker

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edugram/edugram-backend/internal/config"
	"github.com/edugram/edugram-backend/internal/model"
	"github.com/edugram/edugram-backend/internal/repository"
)

const (
	StatsBatchSize    = 50
	StatsBatchTimeout = 2 * time.Second
	StatsPollTimeout  = 1 * time.Second
)

// statsStore is the slice of UserRepository the worker needs.
type statsStore interface {
	ApplyStatsBatch(ctx context.Context, deltas []repository.StatsDelta) error
	ApplyStats(ctx context.Context, delta repository.StatsDelta) error
}

// ProfileStatsWorker drains finished-session stats off the Redis queue and
// folds them into user totals in batches. It also keeps the leaderboard
// sorted set incremented.
type ProfileStatsWorker struct {
	users statsStore
	rdb   *redis.Client
	log   zerolog.Logger
}

func NewProfileStatsWorker(users *repository.UserRepository, rdb *redis.Client, log zerolog.Logger) *ProfileStatsWorker {
	return &ProfileStatsWorker{
		users: users,
		rdb:   rdb,
		log:   log.With().Str("component", "profile_stats_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ProfileStatsWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ProfileStatsWorker started")

	batch := make([]*model.ProfileStatsPayload, 0, StatsBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= StatsBatchSize || time.Since(lastFlush) >= StatsBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, StatsPollTimeout, config.WorkerKey.ProfileStatsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p model.ProfileStatsPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

// ----------------------------------------------------------------
// Batch update wrapper
// ----------------------------------------------------------------

func (w *ProfileStatsWorker) flushSafe(ctx context.Context, batch []*model.ProfileStatsPayload) {
	if len(batch) == 0 {
		return
	}

	applied, failed := w.applyDeltas(ctx, batch)

	for _, p := range failed {
		raw, _ := json.Marshal(p)
		w.rdb.RPush(ctx, config.WorkerKey.ProfileStatsQueue, raw)
	}

	// Only totals that landed in Postgres may bump the leaderboard scores.
	w.bulkIncrementLeaderboard(ctx, applied)
}

// applyDeltas folds the batch into the user totals, preferring one bulk
// UPDATE and degrading to per-row updates when the bulk statement fails so
// one bad payload cannot poison the whole batch. It returns the payloads
// whose totals landed and the ones that must be requeued.
func (w *ProfileStatsWorker) applyDeltas(ctx context.Context, batch []*model.ProfileStatsPayload) (applied, failed []*model.ProfileStatsPayload) {
	deltas := make([]repository.StatsDelta, len(batch))
	for i, p := range batch {
		deltas[i] = toDelta(p)
	}

	err := w.users.ApplyStatsBatch(ctx, deltas)
	if err == nil {
		return batch, nil
	}
	w.log.Warn().Err(err).Msg("bulk stats update failed, using fallback")

	for _, p := range batch {
		if err := w.users.ApplyStats(ctx, toDelta(p)); err != nil {
			w.log.Error().Err(err).Msg("single stats update failed, requeueing")
			failed = append(failed, p)
			continue
		}
		applied = append(applied, p)
	}
	return applied, failed
}

// toDelta converts a queue payload into a repository delta. Every payload is
// exactly one completed session.
func toDelta(p *model.ProfileStatsPayload) repository.StatsDelta {
	return repository.StatsDelta{
		UserID:            p.UserID,
		ScoreDelta:        p.ScoreDelta,
		QuestionsAnswered: p.QuestionsAnswered,
		CorrectAnswers:    p.CorrectAnswers,
		SessionsCompleted: 1,
	}
}

// ----------------------------------------------------------------
// BULK Redis ZINCRBY for the leaderboard
// ----------------------------------------------------------------

func (w *ProfileStatsWorker) bulkIncrementLeaderboard(ctx context.Context, batch []*model.ProfileStatsPayload) {
	pipe := w.rdb.Pipeline()

	for _, p := range batch {
		if p.ScoreDelta == 0 {
			continue
		}
		pipe.ZIncrBy(ctx, config.CacheKey.LeaderboardKey(), float64(p.ScoreDelta), strconv.Itoa(p.UserID))
	}

	_, _ = pipe.Exec(ctx)
}
