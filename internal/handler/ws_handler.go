package handler

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/edugram/edugram-backend/internal/engine"
	"github.com/edugram/edugram-backend/internal/middleware"
	"github.com/edugram/edugram-backend/internal/service"
	ws "github.com/edugram/edugram-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow-list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams a live play session over WebSocket: client actions in,
// state snapshots and timer-expiry events out.
type WSHandler struct {
	play     *service.PlayService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(play *service.PlayService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		play:     play,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// PlayStream godoc
// WS /ws/v1/play/stream?token=...
// Requires an already-started session.
func (h *WSHandler) PlayStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID := claims.UserID

	events, err := h.play.Events(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active session"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("user_id", userID).Logger()
	wsLog.Info().Msg("Player connected")

	// Concurrent writers: the action loop and the event pump share the
	// connection through one mutex.
	var writeMu sync.Mutex
	write := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return ws.WriteTyped(conn, v)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if err := write(toWSEvent(ev)); err != nil {
					wsLog.Debug().Err(err).Msg("event push failed")
					return
				}
			}
		}
	}()
	defer close(done)

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			write(ws.PongResponse{Event: ws.EventPong})

		case ws.ActionSelect:
			h.respond(write, func() (engine.Snapshot, *engine.SessionSummary, error) {
				snap, err := h.play.Select(userID, msg.Answer)
				return snap, nil, err
			})

		case ws.ActionSubmit:
			h.respond(write, func() (engine.Snapshot, *engine.SessionSummary, error) {
				return h.play.Submit(c.Request.Context(), userID, msg.Answer)
			})

		case ws.ActionHint:
			h.respond(write, func() (engine.Snapshot, *engine.SessionSummary, error) {
				snap, err := h.play.RevealHint(userID)
				return snap, nil, err
			})

		case ws.ActionBack:
			h.respond(write, func() (engine.Snapshot, *engine.SessionSummary, error) {
				snap, err := h.play.Back(userID)
				return snap, nil, err
			})

		case ws.ActionForward:
			h.respond(write, func() (engine.Snapshot, *engine.SessionSummary, error) {
				snap, err := h.play.Forward(userID)
				return snap, nil, err
			})

		case ws.ActionSnapshot:
			h.respond(write, func() (engine.Snapshot, *engine.SessionSummary, error) {
				snap, err := h.play.Snapshot(userID)
				return snap, nil, err
			})

		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			write(ws.ErrorResponse{Event: ws.EventError, Error: "unknown action: " + string(msg.Action)})
		}
	}
}

// respond runs one session action and writes the resulting state or error.
func (h *WSHandler) respond(write func(interface{}) error, fn func() (engine.Snapshot, *engine.SessionSummary, error)) {
	snap, summary, err := fn()
	if err != nil {
		write(ws.ErrorResponse{Event: ws.EventError, Error: err.Error()})
		return
	}
	if summary != nil {
		write(ws.CompletedResponse{Event: ws.EventCompleted, Snapshot: snap, Summary: *summary})
		return
	}
	write(ws.StateResponse{Event: ws.EventState, Snapshot: snap})
}

// toWSEvent maps a service push event onto the wire schema.
func toWSEvent(ev service.PlayEvent) interface{} {
	switch ev.Type {
	case service.PlayEventCompleted:
		if ev.Summary != nil {
			return ws.CompletedResponse{Event: ws.EventCompleted, Snapshot: ev.Snapshot, Summary: *ev.Summary}
		}
		return ws.StateResponse{Event: ws.EventCompleted, Snapshot: ev.Snapshot}
	case service.PlayEventExpired:
		return ws.StateResponse{Event: ws.EventExpired, Snapshot: ev.Snapshot}
	default:
		return ws.StateResponse{Event: ws.EventState, Snapshot: ev.Snapshot}
	}
}
