package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edugram/edugram-backend/internal/config"
)

// ProgressService tracks which modules a user has completed. Completion is a
// Redis hash per user, field = module ID, value = unix time of first clear.
type ProgressService struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewProgressService creates a new ProgressService.
func NewProgressService(rdb *redis.Client, log zerolog.Logger) *ProgressService {
	return &ProgressService{
		rdb: rdb,
		log: log.With().Str("component", "progress").Logger(),
	}
}

// MarkCompleted records the first completion of a module. Repeat completions
// keep the original timestamp.
func (s *ProgressService) MarkCompleted(ctx context.Context, userID int, moduleID string) error {
	key := config.CacheKey.UserCompletionKey(userID)
	if err := s.rdb.HSetNX(ctx, key, moduleID, strconv.FormatInt(time.Now().Unix(), 10)).Err(); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

// CompletedModules returns the set of module IDs the user has completed.
func (s *ProgressService) CompletedModules(ctx context.Context, userID int) (map[string]bool, error) {
	fields, err := s.rdb.HKeys(ctx, config.CacheKey.UserCompletionKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}
	completed := make(map[string]bool, len(fields))
	for _, f := range fields {
		completed[f] = true
	}
	return completed, nil
}

// CompletedCount returns how many distinct modules the user has completed.
func (s *ProgressService) CompletedCount(ctx context.Context, userID int) (int, error) {
	n, err := s.rdb.HLen(ctx, config.CacheKey.UserCompletionKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("count completions: %w", err)
	}
	return int(n), nil
}
