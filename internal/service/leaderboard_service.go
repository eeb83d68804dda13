package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edugram/edugram-backend/internal/config"
	"github.com/edugram/edugram-backend/internal/model"
	"github.com/edugram/edugram-backend/internal/repository"
)

// LeaderboardService ranks users by lifetime score in a Redis sorted set.
// The stats worker keeps the set incremented; on a cold cache the set is
// rebuilt from Postgres.
type LeaderboardService struct {
	rdb   *redis.Client
	users *repository.UserRepository
	size  int
	log   zerolog.Logger
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(rdb *redis.Client, users *repository.UserRepository, size int, log zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		rdb:   rdb,
		users: users,
		size:  size,
		log:   log.With().Str("component", "leaderboard").Logger(),
	}
}

// Top returns the highest-ranked users, rebuilding the sorted set from the
// database when it is empty.
func (s *LeaderboardService) Top(ctx context.Context) ([]model.LeaderboardEntry, error) {
	key := config.CacheKey.LeaderboardKey()

	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("check leaderboard: %w", err)
	}
	if exists == 0 {
		if err := s.rebuild(ctx); err != nil {
			return nil, err
		}
	}

	zs, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(s.size-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	entries := make([]model.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		userID, err := strconv.Atoi(fmt.Sprint(z.Member))
		if err != nil {
			continue
		}
		name := ""
		if u, err := s.users.GetByID(ctx, userID); err == nil {
			name = u.Name
		}
		entries = append(entries, model.LeaderboardEntry{
			Rank:   i + 1,
			UserID: userID,
			Name:   name,
			Score:  int(z.Score),
		})
	}
	return entries, nil
}

// Rank returns a single user's 1-based rank, or 0 when unranked.
func (s *LeaderboardService) Rank(ctx context.Context, userID int) (int, error) {
	rank, err := s.rdb.ZRevRank(ctx, config.CacheKey.LeaderboardKey(), strconv.Itoa(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("read rank: %w", err)
	}
	return int(rank) + 1, nil
}

// rebuild repopulates the sorted set from user totals in Postgres.
func (s *LeaderboardService) rebuild(ctx context.Context) error {
	users, err := s.users.ListTopByScore(ctx, s.size*10)
	if err != nil {
		return fmt.Errorf("rebuild leaderboard: %w", err)
	}
	if len(users) == 0 {
		return nil
	}

	members := make([]redis.Z, len(users))
	for i, u := range users {
		members[i] = redis.Z{Score: float64(u.TotalScore), Member: strconv.Itoa(u.ID)}
	}
	if err := s.rdb.ZAdd(ctx, config.CacheKey.LeaderboardKey(), members...).Err(); err != nil {
		return fmt.Errorf("rebuild leaderboard: %w", err)
	}
	s.log.Info().Int("members", len(members)).Msg("leaderboard rebuilt from database")
	return nil
}
