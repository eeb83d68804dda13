package model

import (
	"time"

	"github.com/google/uuid"
)

// Subject represents a top-level learning topic (e.g. Science, History).
type Subject struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Module represents an ordered learning unit inside a subject. Each module
// carries a default game mode that the play service uses when a session
// request does not override it.
type Module struct {
	ID          uuid.UUID `json:"id"`
	SubjectID   uuid.UUID `json:"subject_id"`
	Title       string    `json:"title"`
	DefaultMode string    `json:"default_mode"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ModuleWithProgress decorates a module with the requesting user's state.
type ModuleWithProgress struct {
	Module
	Completed bool `json:"completed"`
	BestScore int  `json:"best_score"`
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	Position    int    `json:"position" binding:"min=0"`
}

// UpdateSubjectRequest is the payload for updating a subject.
type UpdateSubjectRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	Position    int    `json:"position" binding:"min=0"`
}

// CreateModuleRequest is the payload for adding a module to a subject.
type CreateModuleRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	DefaultMode string `json:"default_mode" binding:"required,gamemode"`
	Position    int    `json:"position" binding:"min=0"`
}

// UpdateModuleRequest is the payload for updating a module.
type UpdateModuleRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	DefaultMode string `json:"default_mode" binding:"required,gamemode"`
	Position    int    `json:"position" binding:"min=0"`
}
