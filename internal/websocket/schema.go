package websocket

import "github.com/edugram/edugram-backend/internal/engine"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionSelect   Action = "select"
	ActionSubmit   Action = "submit"
	ActionHint     Action = "hint"
	ActionBack     Action = "back"
	ActionForward  Action = "forward"
	ActionSnapshot Action = "snapshot"
	ActionPing     Action = "ping"
)

// RequestPayload covers every client action; Answer is only read for
// select and submit.
type RequestPayload struct {
	Action Action `json:"action"`
	Answer string `json:"answer,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError     Event = "error"
	EventState     Event = "state"
	EventExpired   Event = "expired"
	EventCompleted Event = "completed"
	EventPong      Event = "pong"
)

type StateResponse struct {
	Event    Event           `json:"event"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

type CompletedResponse struct {
	Event    Event                 `json:"event"`
	Snapshot engine.Snapshot       `json:"snapshot"`
	Summary  engine.SessionSummary `json:"summary"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
