package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edugram/edugram-backend/internal/middleware"
	"github.com/edugram/edugram-backend/internal/model"
	"github.com/edugram/edugram-backend/internal/response"
	"github.com/edugram/edugram-backend/internal/service"
	"github.com/edugram/edugram-backend/internal/validator"
)

// ProfileHandler serves the learner's own profile, stats, and history.
type ProfileHandler struct {
	profile *service.ProfileService
	auth    *service.AuthService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profile *service.ProfileService, auth *service.AuthService) *ProfileHandler {
	return &ProfileHandler{profile: profile, auth: auth}
}

// Me godoc
// GET /api/v1/profile
func (h *ProfileHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	p, err := h.profile.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.OK(c, p)
}

// Update godoc
// PUT /api/v1/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.UpdateProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.profile.UpdateProfile(c.Request.Context(), claims.UserID, h.auth, req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.OK(c, gin.H{"user": user})
}

// History godoc
// GET /api/v1/profile/history?page=1&per_page=20
func (h *ProfileHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	records, total, err := h.profile.History(c.Request.Context(), claims.UserID, perPage, (page-1)*perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	totalPages := (total + perPage - 1) / perPage
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"sessions": records}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}
