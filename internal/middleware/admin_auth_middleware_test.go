package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bigsofa/bigsofa-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenSecret = "test-admin-secret"

func setupAdminAuthTest() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authMiddleware := NewAdminAuthMiddleware(testTokenSecret)
	router.GET("/protected", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestAdminAuthMiddleware_ValidToken(t *testing.T) {
	router := setupAdminAuthTest()

	token, err := util.GenerateAdminToken(testTokenSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AdminTokenHeader, token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuthMiddleware_TokenInQuery(t *testing.T) {
	router := setupAdminAuthTest()

	token, err := util.GenerateAdminToken(testTokenSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuthMiddleware_MissingToken(t *testing.T) {
	router := setupAdminAuthTest()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_UNAUTHORIZED")
}

func TestAdminAuthMiddleware_ExpiredToken(t *testing.T) {
	router := setupAdminAuthTest()

	token, err := util.GenerateAdminToken(testTokenSecret, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AdminTokenHeader, token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
}

func TestAdminAuthMiddleware_ForgedToken(t *testing.T) {
	router := setupAdminAuthTest()

	token, err := util.GenerateAdminToken("some-other-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AdminTokenHeader, token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
}
