package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/edugram/edugram-backend/internal/config"
	"github.com/edugram/edugram-backend/internal/handler"
	"github.com/edugram/edugram-backend/internal/middleware"
	"github.com/edugram/edugram-backend/internal/response"
	"github.com/edugram/edugram-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Catalog     *handler.CatalogHandler
	Play        *handler.PlayHandler
	Profile     *handler.ProfileHandler
	Leaderboard *handler.LeaderboardHandler
	Admin       *handler.AdminHandler
	WS          *handler.WSHandler
	System      *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes, per IP per minute.
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", middleware.RequireUserJWT(authService), handlers.Auth.Logout)
	}

	// ─── 2. Learner Group (JWT + Single Device) ────────────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireUserJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		api.GET("/subjects", handlers.Catalog.ListSubjects)
		api.GET("/subjects/:subject_id/modules", handlers.Catalog.ListModules)

		api.GET("/profile", handlers.Profile.Me)
		api.PUT("/profile", handlers.Profile.Update)
		api.GET("/profile/history", handlers.Profile.History)

		api.GET("/leaderboard", handlers.Leaderboard.Top)

		play := api.Group("/play/sessions")
		{
			play.POST("", handlers.Play.StartSession)
			play.GET("/current", handlers.Play.GetSession)
			play.DELETE("/current", handlers.Play.AbandonSession)
			play.POST("/current/select", handlers.Play.SelectAnswer)
			play.POST("/current/submit", handlers.Play.SubmitAnswer)
			play.POST("/current/hint", handlers.Play.RevealHint)
			play.POST("/current/back", handlers.Play.Back)
			play.POST("/current/forward", handlers.Play.Forward)
			play.GET("/current/result", handlers.Play.GetResult)
		}
	}

	// ─── 3. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireUserWSAuth(authService))
	{
		ws.GET("/play/stream", handlers.WS.PlayStream)
	}

	// ─── 4. Admin Group (JWT, admin role) ──────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.POST("/subjects", handlers.Admin.CreateSubject)
		adminAPI.PUT("/subjects/:subject_id", handlers.Admin.UpdateSubject)
		adminAPI.DELETE("/subjects/:subject_id", handlers.Admin.DeleteSubject)
		adminAPI.POST("/subjects/:subject_id/modules", handlers.Admin.CreateModule)

		adminAPI.PUT("/modules/:module_id", handlers.Admin.UpdateModule)
		adminAPI.DELETE("/modules/:module_id", handlers.Admin.DeleteModule)
		adminAPI.GET("/modules/:module_id/questions", handlers.Admin.ListQuestions)
		adminAPI.POST("/modules/:module_id/questions", handlers.Admin.CreateQuestion)
		adminAPI.PUT("/modules/:module_id/questions", handlers.Admin.ReplaceQuestions)
		adminAPI.DELETE("/modules/:module_id/questions/:question_id", handlers.Admin.DeleteQuestion)

		adminAPI.GET("/system/metrics", handlers.System.SystemMetricsSSE)
	}

	return router
}
