package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session (JTI).
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// QuestionPoolKey returns the cache key for a module's question pool.
func (r *CacheKeyStruct) QuestionPoolKey(moduleID string) string {
	return fmt.Sprintf("module:%s:pool", moduleID)
}

// UserCompletionKey returns the hash key tracking a user's completed modules.
// Fields are module IDs, values the unix time of first completion.
func (r *CacheKeyStruct) UserCompletionKey(userID int) string {
	return fmt.Sprintf("user:%d:completed", userID)
}

// LeaderboardKey returns the sorted-set key for the global leaderboard.
func (r *CacheKeyStruct) LeaderboardKey() string {
	return "leaderboard:global"
}

var CacheKey = NewCacheKeyStruct()
