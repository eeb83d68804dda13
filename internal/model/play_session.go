package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/edugram/edugram-backend/internal/engine"
)

// PlaySessionRecord is the persisted row for a finished play session.
type PlaySessionRecord struct {
	ID            string    `json:"id"`
	UserID        int       `json:"user_id"`
	SubjectID     uuid.UUID `json:"subject_id"`
	ModuleID      uuid.UUID `json:"module_id"`
	Mode          string    `json:"mode"`
	TotalScore    int       `json:"total_score"`
	CorrectCount  int       `json:"correct_count"`
	QuestionCount int       `json:"question_count"`
	Accuracy      float64   `json:"accuracy"`
	BestStreak    int       `json:"best_streak"`
	StartedAt     time.Time `json:"started_at"`
	CompletedAt   time.Time `json:"completed_at"`
}

// StartSessionRequest is the payload for starting a play session.
// Mode defaults to the module's own mode when omitted.
type StartSessionRequest struct {
	ModuleID string `json:"module_id" binding:"required,uuid"`
	Mode     string `json:"mode" binding:"omitempty,gamemode"`
	Count    int    `json:"count" binding:"omitempty,min=1,max=50"`
	Seed     int64  `json:"seed" binding:"omitempty"`
}

// SelectAnswerRequest records a provisional choice on the current question.
type SelectAnswerRequest struct {
	Answer string `json:"answer" binding:"required,max=500"`
}

// SubmitAnswerRequest commits an answer for the current question. A blank
// answer is accepted and evaluated as incorrect. Remaining time is measured
// server-side, never trusted from the client.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"max=500"`
}

// SessionStateResponse is the play view returned after every session action.
type SessionStateResponse struct {
	Snapshot engine.Snapshot `json:"snapshot"`
}

// SessionResultResponse is returned when a session completes.
type SessionResultResponse struct {
	Summary engine.SessionSummary `json:"summary"`
}

// LeaderboardEntry is a single ranked row from the global leaderboard.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}
