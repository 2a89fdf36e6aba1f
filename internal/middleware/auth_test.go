package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arenaplay/scoreboard/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, ttl time.Duration) (string, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	claims := service.TokenClaims{
		Username:  "alpha_user",
		FirstName: "Alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed, userID
}

func newTestRouter(m *AuthMiddleware, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", guard, func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		username, _ := c.Get("username")
		firstName, _ := c.Get("first_name")
		c.JSON(http.StatusOK, gin.H{
			"user_id":    userID,
			"username":   username,
			"first_name": firstName,
		})
	})
	return router
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m, m.RequireAuth())

	token, userID := signedToken(t, testSecret, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "alpha_user")
	assert.Contains(t, w.Body.String(), "Alice")
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m, m.RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m, m.RequireAuth())

	token, _ := signedToken(t, testSecret, -time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m, m.RequireAuth())

	token, _ := signedToken(t, "other-secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m, m.OptionalAuth())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":null`)
}

func TestOptionalAuthPopulatesClaims(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m, m.OptionalAuth())

	token, userID := signedToken(t, testSecret, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}
