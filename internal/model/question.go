package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionKind distinguishes how submitted answers are compared.
type QuestionKind string

const (
	QuestionKindMultipleChoice QuestionKind = "MULTIPLE_CHOICE"
	QuestionKindFreeText       QuestionKind = "FREE_TEXT"
)

// Question represents a stored question belonging to a module.
// For multiple-choice questions AnswerIndex points into Options; for
// free-text questions AnswerText holds the expected answer, normalized
// when the play pool is assembled.
type Question struct {
	ID               uuid.UUID    `json:"id"`
	ModuleID         uuid.UUID    `json:"module_id"`
	Kind             QuestionKind `json:"kind"`
	Prompt           string       `json:"prompt"`
	Options          []string     `json:"options"`
	AnswerIndex      int          `json:"answer_index"`
	AnswerText       string       `json:"answer_text"`
	Hint             string       `json:"hint"`
	Explanation      string       `json:"explanation"`
	Difficulty       string       `json:"difficulty"`
	TimeLimitSeconds int          `json:"time_limit_seconds"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// CreateQuestionRequest is the payload for adding a question to a module.
type CreateQuestionRequest struct {
	Kind             string   `json:"kind" binding:"required,oneof=MULTIPLE_CHOICE FREE_TEXT"`
	Prompt           string   `json:"prompt" binding:"required,min=1,max=2000"`
	Options          []string `json:"options" binding:"omitempty,max=8,dive,min=1,max=500"`
	AnswerIndex      int      `json:"answer_index" binding:"min=0"`
	AnswerText       string   `json:"answer_text" binding:"omitempty,max=500"`
	Hint             string   `json:"hint" binding:"max=500"`
	Explanation      string   `json:"explanation" binding:"max=2000"`
	Difficulty       string   `json:"difficulty" binding:"required,oneof=EASY MEDIUM HARD"`
	TimeLimitSeconds int      `json:"time_limit_seconds" binding:"min=0"`
}

// ReplaceQuestionsRequest is the payload for bulk replacing a module's questions.
type ReplaceQuestionsRequest struct {
	Questions []CreateQuestionRequest `json:"questions" binding:"dive"`
}
