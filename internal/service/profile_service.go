package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edugram/edugram-backend/internal/config"
	"github.com/edugram/edugram-backend/internal/engine"
	"github.com/edugram/edugram-backend/internal/model"
	"github.com/edugram/edugram-backend/internal/repository"
)

// Profile bundles a user's account with derived play statistics.
type Profile struct {
	User             model.User `json:"user"`
	CompletedModules int        `json:"completed_modules"`
	LeaderboardRank  int        `json:"leaderboard_rank"`
	Accuracy         float64    `json:"accuracy"`
}

// ProfileService reads user profiles and feeds finished-session stats into
// the background queue consumed by the stats worker.
type ProfileService struct {
	users       *repository.UserRepository
	sessions    *repository.PlaySessionRepository
	progress    *ProgressService
	leaderboard *LeaderboardService
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(
	users *repository.UserRepository,
	sessions *repository.PlaySessionRepository,
	progress *ProgressService,
	leaderboard *LeaderboardService,
	rdb *redis.Client,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		users:       users,
		sessions:    sessions,
		progress:    progress,
		leaderboard: leaderboard,
		rdb:         rdb,
		log:         log.With().Str("component", "profile").Logger(),
	}
}

// Get loads a user's profile with completion count and leaderboard rank.
func (s *ProfileService) Get(ctx context.Context, userID int) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	completed, err := s.progress.CompletedCount(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("failed to count completions")
	}

	rank, err := s.leaderboard.Rank(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("failed to read rank")
	}

	p := &Profile{User: *user, CompletedModules: completed, LeaderboardRank: rank}
	if user.QuestionsAnswered > 0 {
		p.Accuracy = float64(user.CorrectAnswers) / float64(user.QuestionsAnswered) * 100
	}
	return p, nil
}

// UpdateProfile edits the user's name and, optionally, password.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int, auth *AuthService, req model.UpdateProfileRequest) (*model.User, error) {
	hash := ""
	if req.Password != "" {
		var err error
		hash, err = auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}
	if err := s.users.UpdateProfile(ctx, userID, req.Name, hash); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.users.GetByID(ctx, userID)
}

// History returns a user's completed sessions, most recent first.
func (s *ProfileService) History(ctx context.Context, userID, limit, offset int) ([]model.PlaySessionRecord, int, error) {
	return s.sessions.ListByUser(ctx, userID, limit, offset)
}

// ─── Stats sink ─────────────────────────────────────────────────────────────

// QueueStatsSink pushes finished-session deltas onto the Redis list drained
// by the profile stats worker. It satisfies engine.ProfileSink.
type QueueStatsSink struct {
	rdb *redis.Client
}

// NewQueueStatsSink creates a QueueStatsSink.
func NewQueueStatsSink(rdb *redis.Client) *QueueStatsSink {
	return &QueueStatsSink{rdb: rdb}
}

// UpdateStats enqueues one session's stats contribution.
func (q *QueueStatsSink) UpdateStats(ctx context.Context, userID int, summary engine.SessionSummary) error {
	raw, err := json.Marshal(model.ProfileStatsPayload{
		UserID:            userID,
		ScoreDelta:        summary.TotalScore,
		QuestionsAnswered: summary.QuestionCount,
		CorrectAnswers:    summary.CorrectCount,
	})
	if err != nil {
		return fmt.Errorf("marshal stats payload: %w", err)
	}
	if err := q.rdb.RPush(ctx, config.WorkerKey.ProfileStatsQueue, raw).Err(); err != nil {
		return fmt.Errorf("enqueue stats payload: %w", err)
	}
	return nil
}
