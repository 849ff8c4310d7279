package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khallark/studio-sub002/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	cfg := config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	}
	return NewJWTService(cfg)
}

func TestNewJWTService(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:                "test-secret",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	}

	svc := NewJWTService(cfg)

	assert.NotNil(t, svc)
	assert.Equal(t, []byte(cfg.Secret), svc.secret)
	assert.Equal(t, cfg.AccessTokenExpiration, svc.expiration)
	assert.Equal(t, cfg.Issuer, svc.issuer)
}

func TestValidateToken_Success(t *testing.T) {
	svc := newTestJWTService()
	callerID := uuid.New()
	tenantID := uuid.New()
	stores := []uuid.UUID{uuid.New(), uuid.New()}

	token, err := svc.GenerateToken(callerID, tenantID, stores)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	caller, err := svc.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, callerID, caller.CallerID)
	assert.Equal(t, tenantID, caller.TenantID)
	assert.Equal(t, stores, caller.AuthorizedStores)
}

func TestValidateToken_NoStores(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken(uuid.New(), uuid.New(), nil)
	require.NoError(t, err)

	caller, err := svc.ValidateToken(token)

	require.NoError(t, err)
	assert.Empty(t, caller.AuthorizedStores)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: -1 * time.Hour, // Already expired
		Issuer:                "test-issuer",
	}
	svc := NewJWTService(cfg)

	token, err := svc.GenerateToken(uuid.New(), uuid.New(), nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateToken("invalid-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_DifferentSecret(t *testing.T) {
	svc1 := newTestJWTService()

	token, err := svc1.GenerateToken(uuid.New(), uuid.New(), nil)
	require.NoError(t, err)

	cfg := config.JWTConfig{
		Secret:                "different-secret-key-32-chars!",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	}
	svc2 := NewJWTService(cfg)

	_, err = svc2.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
