package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edugram/edugram-backend/internal/engine"
	"github.com/edugram/edugram-backend/internal/middleware"
	"github.com/edugram/edugram-backend/internal/model"
	"github.com/edugram/edugram-backend/internal/response"
	"github.com/edugram/edugram-backend/internal/service"
	"github.com/edugram/edugram-backend/internal/validator"
)

// PlayHandler exposes the REST surface of live play sessions.
type PlayHandler struct {
	play *service.PlayService
}

// NewPlayHandler creates a new PlayHandler.
func NewPlayHandler(play *service.PlayService) *PlayHandler {
	return &PlayHandler{play: play}
}

// failPlay maps play/engine errors onto API error codes.
func failPlay(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveSession)
	case errors.Is(err, service.ErrModuleNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, engine.ErrEmptyPool):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrNoQuestions)
	case errors.Is(err, engine.ErrSessionCompleted):
		response.Fail(c, http.StatusConflict, response.ErrSessionCompleted)
	case errors.Is(err, engine.ErrSessionNotCompleted):
		response.Fail(c, http.StatusConflict, response.ErrSessionNotCompleted)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// StartSession godoc
// POST /api/v1/play/sessions
// Builds a new session from the module's question pool.
func (h *PlayHandler) StartSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.StartSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	snap, err := h.play.Start(c.Request.Context(), claims.UserID, req)
	if err != nil {
		failPlay(c, err)
		return
	}
	response.Success(c, http.StatusCreated, model.SessionStateResponse{Snapshot: snap})
}

// GetSession godoc
// GET /api/v1/play/sessions/current
func (h *PlayHandler) GetSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	snap, err := h.play.Snapshot(claims.UserID)
	if err != nil {
		failPlay(c, err)
		return
	}
	response.OK(c, model.SessionStateResponse{Snapshot: snap})
}

// SelectAnswer godoc
// POST /api/v1/play/sessions/current/select
func (h *PlayHandler) SelectAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SelectAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	snap, err := h.play.Select(claims.UserID, req.Answer)
	if err != nil {
		failPlay(c, err)
		return
	}
	response.OK(c, model.SessionStateResponse{Snapshot: snap})
}

// SubmitAnswer godoc
// POST /api/v1/play/sessions/current/submit
// A blank answer is allowed and always judged incorrect.
func (h *PlayHandler) SubmitAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	snap, summary, err := h.play.Submit(c.Request.Context(), claims.UserID, req.Answer)
	if err != nil {
		failPlay(c, err)
		return
	}

	if summary != nil {
		response.OK(c, gin.H{"snapshot": snap, "summary": summary})
		return
	}
	response.OK(c, model.SessionStateResponse{Snapshot: snap})
}

// RevealHint godoc
// POST /api/v1/play/sessions/current/hint
func (h *PlayHandler) RevealHint(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	snap, err := h.play.RevealHint(claims.UserID)
	if err != nil {
		failPlay(c, err)
		return
	}
	response.OK(c, model.SessionStateResponse{Snapshot: snap})
}

// Back godoc
// POST /api/v1/play/sessions/current/back
func (h *PlayHandler) Back(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	snap, err := h.play.Back(claims.UserID)
	if err != nil {
		failPlay(c, err)
		return
	}
	response.OK(c, model.SessionStateResponse{Snapshot: snap})
}

// Forward godoc
// POST /api/v1/play/sessions/current/forward
func (h *PlayHandler) Forward(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	snap, err := h.play.Forward(claims.UserID)
	if err != nil {
		failPlay(c, err)
		return
	}
	response.OK(c, model.SessionStateResponse{Snapshot: snap})
}

// GetResult godoc
// GET /api/v1/play/sessions/current/result
// Only available once the session has completed.
func (h *PlayHandler) GetResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	summary, err := h.play.Result(claims.UserID)
	if err != nil {
		failPlay(c, err)
		return
	}
	response.OK(c, model.SessionResultResponse{Summary: *summary})
}

// AbandonSession godoc
// DELETE /api/v1/play/sessions/current
func (h *PlayHandler) AbandonSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.play.Abandon(claims.UserID); err != nil {
		failPlay(c, err)
		return
	}
	response.OK(c, gin.H{})
}
