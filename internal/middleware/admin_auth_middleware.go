package middleware

import (
	"net/http"

	"github.com/bigsofa/bigsofa-backend/internal/errors"
	"github.com/bigsofa/bigsofa-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// AdminTokenHeader carries the dashboard token on every admin request.
const AdminTokenHeader = "X-Admin-Token"

type AdminAuthMiddleware struct {
	tokenSecret string
}

func NewAdminAuthMiddleware(tokenSecret string) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{
		tokenSecret: tokenSecret,
	}
}

// Authenticate validates the admin token (required)
func (m *AdminAuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token := c.GetHeader(AdminTokenHeader)
		if token == "" {
			// The WebSocket handshake cannot set custom headers from the
			// browser, so the token may arrive as a query parameter.
			token = c.Query("token")
		}
		if token == "" {
			log.Warn("Missing admin token", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Admin authentication required")
			c.Abort()
			return
		}

		claims, err := util.ValidateAdminToken(token, m.tokenSecret)
		if err != nil {
			log.Warn("Admin token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session expired, please log in again")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid admin token")
			}
			c.Abort()
			return
		}

		c.Set("admin_subject", claims.Subject)

		log.Debug("Admin authenticated", map[string]interface{}{
			"path": c.Request.URL.Path,
		})
		c.Next()
	}
}
