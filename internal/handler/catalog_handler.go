package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edugram/edugram-backend/internal/middleware"
	"github.com/edugram/edugram-backend/internal/response"
	"github.com/edugram/edugram-backend/internal/service"
)

// CatalogHandler serves the learner-facing subject/module catalog.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListSubjects godoc
// GET /api/v1/subjects
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.catalog.ListSubjects(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.OK(c, gin.H{"subjects": subjects})
}

// ListModules godoc
// GET /api/v1/subjects/:subject_id/modules
// Returns the subject's modules with the caller's completion state.
func (h *CatalogHandler) ListModules(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	subjectID, err := uuid.Parse(c.Param("subject_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	modules, err := h.catalog.ListModulesWithProgress(c.Request.Context(), claims.UserID, subjectID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.OK(c, gin.H{"modules": modules})
}
