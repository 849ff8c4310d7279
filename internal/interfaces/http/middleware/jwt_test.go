package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/infrastructure/auth"
	"github.com/khallark/studio-sub002/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	})
}

func setupAuthRouter(svc *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), JWTAuth(svc))
	r.GET("/protected", func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no caller"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"caller_id": caller.CallerID.String()})
	})
	return r
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	r := setupAuthRouter(svc)

	callerID := uuid.New()
	token, err := svc.GenerateToken(callerID, uuid.New(), []uuid.UUID{uuid.New()})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), callerID.String())
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	r := setupAuthRouter(newTestJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Missing authorization header")
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	svc := newTestJWTService()
	r := setupAuthRouter(svc)

	token, err := svc.GenerateToken(uuid.New(), uuid.New(), nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", token},
		{"wrong scheme", "Basic " + token},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", tt.header)
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	r := setupAuthRouter(newTestJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: -1 * time.Hour,
		Issuer:                "test-issuer",
	})
	r := setupAuthRouter(expired)

	token, err := expired.GenerateToken(uuid.New(), uuid.New(), nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCaller_NotSet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetCaller(c)
	assert.False(t, ok)
}

func TestGetCaller_WrongType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(CallerKey, "not a caller context")

	_, ok := GetCaller(c)
	assert.False(t, ok)
}

func TestGetCaller_RoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	caller := shared.NewCallerContext(uuid.New(), uuid.New(), []uuid.UUID{uuid.New()})
	c.Set(CallerKey, caller)

	got, ok := GetCaller(c)
	require.True(t, ok)
	assert.Equal(t, caller, got)
}
