package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bigsofa/bigsofa-backend/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionTest() (*gin.Engine, *session.MemoryStore) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := session.NewMemoryStore(time.Hour)
	sessionMiddleware := NewSessionMiddleware(store)

	router.GET("/cart", sessionMiddleware.Resolve(), func(c *gin.Context) {
		sess := GetSessionFromContext(c)
		c.JSON(http.StatusOK, gin.H{"sessionId": sess.ID})
	})
	return router, store
}

func TestSessionMiddleware_IssuesSessionID(t *testing.T) {
	router, store := setupSessionTest()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	issued := w.Header().Get(SessionIDHeader)
	assert.NotEmpty(t, issued)
	assert.Equal(t, 1, store.Len())
}

func TestSessionMiddleware_ReusesExistingSession(t *testing.T) {
	router, store := setupSessionTest()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	issued := w.Header().Get(SessionIDHeader)
	require.NotEmpty(t, issued)

	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(SessionIDHeader, issued)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, issued, w.Header().Get(SessionIDHeader))
	assert.Equal(t, 1, store.Len())
}

func TestSessionMiddleware_UnknownIDGetsFreshSession(t *testing.T) {
	router, _ := setupSessionTest()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(SessionIDHeader, "stale-or-forged-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "stale-or-forged-id", w.Header().Get(SessionIDHeader))
}
