package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edugram/edugram-backend/internal/middleware"
	"github.com/edugram/edugram-backend/internal/response"
	"github.com/edugram/edugram-backend/internal/service"
)

// LeaderboardHandler serves the global ranking.
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// Top godoc
// GET /api/v1/leaderboard
// Returns the top-ranked users plus the caller's own rank.
func (h *LeaderboardHandler) Top(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	entries, err := h.leaderboard.Top(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	rank, err := h.leaderboard.Rank(c.Request.Context(), claims.UserID)
	if err != nil {
		rank = 0
	}

	response.OK(c, gin.H{"entries": entries, "my_rank": rank})
}
