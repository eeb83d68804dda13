package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edugram/edugram-backend/internal/model"
	"github.com/edugram/edugram-backend/internal/response"
	"github.com/edugram/edugram-backend/internal/service"
	"github.com/edugram/edugram-backend/internal/validator"
)

// AdminHandler covers the content-management surface: subjects, modules,
// and questions.
type AdminHandler struct {
	catalog *service.CatalogService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(catalog *service.CatalogService) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// ─── Subjects ───────────────────────────────────────────────────────────────

// CreateSubject godoc
// POST /api/v1/admin/subjects
func (h *AdminHandler) CreateSubject(c *gin.Context) {
	var req model.CreateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject, err := h.catalog.CreateSubject(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"subject": subject})
}

// UpdateSubject godoc
// PUT /api/v1/admin/subjects/:subject_id
func (h *AdminHandler) UpdateSubject(c *gin.Context) {
	id, ok := parseIDParam(c, "subject_id")
	if !ok {
		return
	}

	var req model.UpdateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject, err := h.catalog.UpdateSubject(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.OK(c, gin.H{"subject": subject})
}

// DeleteSubject godoc
// DELETE /api/v1/admin/subjects/:subject_id
func (h *AdminHandler) DeleteSubject(c *gin.Context) {
	id, ok := parseIDParam(c, "subject_id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteSubject(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.OK(c, gin.H{})
}

// ─── Modules ────────────────────────────────────────────────────────────────

// CreateModule godoc
// POST /api/v1/admin/subjects/:subject_id/modules
func (h *AdminHandler) CreateModule(c *gin.Context) {
	subjectID, ok := parseIDParam(c, "subject_id")
	if !ok {
		return
	}

	var req model.CreateModuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	module, err := h.catalog.CreateModule(c.Request.Context(), subjectID, req)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"module": module})
}

// UpdateModule godoc
// PUT /api/v1/admin/modules/:module_id
func (h *AdminHandler) UpdateModule(c *gin.Context) {
	id, ok := parseIDParam(c, "module_id")
	if !ok {
		return
	}

	var req model.UpdateModuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	module, err := h.catalog.UpdateModule(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.OK(c, gin.H{"module": module})
}

// DeleteModule godoc
// DELETE /api/v1/admin/modules/:module_id
func (h *AdminHandler) DeleteModule(c *gin.Context) {
	id, ok := parseIDParam(c, "module_id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteModule(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.OK(c, gin.H{})
}

// ─── Questions ──────────────────────────────────────────────────────────────

// ListQuestions godoc
// GET /api/v1/admin/modules/:module_id/questions
func (h *AdminHandler) ListQuestions(c *gin.Context) {
	moduleID, ok := parseIDParam(c, "module_id")
	if !ok {
		return
	}

	questions, err := h.catalog.ListQuestions(c.Request.Context(), moduleID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.OK(c, gin.H{"questions": questions})
}

// CreateQuestion godoc
// POST /api/v1/admin/modules/:module_id/questions
func (h *AdminHandler) CreateQuestion(c *gin.Context) {
	moduleID, ok := parseIDParam(c, "module_id")
	if !ok {
		return
	}

	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.catalog.CreateQuestion(c.Request.Context(), moduleID, req)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// ReplaceQuestions godoc
// PUT /api/v1/admin/modules/:module_id/questions
func (h *AdminHandler) ReplaceQuestions(c *gin.Context) {
	moduleID, ok := parseIDParam(c, "module_id")
	if !ok {
		return
	}

	var req model.ReplaceQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.catalog.ReplaceQuestions(c.Request.Context(), moduleID, req); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.OK(c, gin.H{})
}

// DeleteQuestion godoc
// DELETE /api/v1/admin/modules/:module_id/questions/:question_id
func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	moduleID, ok := parseIDParam(c, "module_id")
	if !ok {
		return
	}
	questionID, ok := parseIDParam(c, "question_id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteQuestion(c.Request.Context(), moduleID, questionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.OK(c, gin.H{})
}
