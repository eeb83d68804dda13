package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edugram/edugram-backend/internal/response"
	"github.com/edugram/edugram-backend/internal/service"
)

// CheckSingleDeviceSession validates the JWT's JTI against the active login in Redis.
// If the JTI doesn't match, the token was superseded by a newer login and is rejected.
func CheckSingleDeviceSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		// Only enforce for learner tokens.
		if claims.TokenType != service.TokenTypeUser {
			c.Next()
			return
		}

		if err := authService.ValidateUserLogin(c.Request.Context(), claims.UserID, claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}

		c.Next()
	}
}
