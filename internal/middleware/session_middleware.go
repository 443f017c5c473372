package middleware

import (
	"github.com/bigsofa/bigsofa-backend/internal/errors"
	"github.com/bigsofa/bigsofa-backend/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionIDHeader identifies the visitor. The storefront sends it on every
// request once issued; a missing or unknown ID yields a fresh session whose
// ID is echoed back in the response.
const SessionIDHeader = "X-Session-ID"

const sessionContextKey = "session"

type SessionMiddleware struct {
	store session.Store
}

func NewSessionMiddleware(store session.Store) *SessionMiddleware {
	return &SessionMiddleware{store: store}
}

// Resolve attaches the visitor's session to the request context, creating
// one when needed, and persists it after the handler runs.
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		sess, err := m.store.GetOrCreate(c.Request.Context(), c.GetHeader(SessionIDHeader))
		if err != nil {
			log.Error("Failed to resolve session", err, map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.InternalError(c, "Could not resolve session")
			c.Abort()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Header(SessionIDHeader, sess.ID)

		c.Next()

		if err := m.store.Save(c.Request.Context(), sess); err != nil {
			log.Error("Failed to persist session", err, map[string]interface{}{
				"session_id": sess.ID,
			})
		}
	}
}

// GetSessionFromContext retrieves the session placed by Resolve. Handlers
// behind the middleware can rely on it being present.
func GetSessionFromContext(c *gin.Context) *session.Session {
	if v, exists := c.Get(sessionContextKey); exists {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}
