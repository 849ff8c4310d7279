package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrInvalidClaims  = errors.New("invalid token claims")
	ErrMissingTenant  = errors.New("missing tenant_id in claims")
	ErrMissingCaller  = errors.New("missing user_id in claims")
)

// Claims represents custom JWT claims. Stores carries the storefront
// identifiers the caller may act on; the core checks it on every operation.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string   `json:"tenant_id"`
	UserID   string   `json:"user_id"`
	Stores   []string `json:"stores,omitempty"`
}

// JWTService handles JWT token operations
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.AccessTokenExpiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateToken issues an access token for the caller
func (s *JWTService) GenerateToken(callerID, tenantID uuid.UUID, stores []uuid.UUID) (string, error) {
	now := time.Now()
	storeStrings := make([]string, len(stores))
	for i, id := range stores {
		storeStrings[i] = id.String()
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   callerID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TenantID: tenantID.String(),
		UserID:   callerID.String(),
		Stores:   storeStrings,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and validates a token, returning the caller context
// the core operations require
func (s *JWTService) ValidateToken(tokenString string) (*shared.CallerContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingCaller
	}
	if claims.TenantID == "" {
		return nil, ErrMissingTenant
	}

	callerID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidClaims
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return nil, ErrInvalidClaims
	}
	stores := make([]uuid.UUID, 0, len(claims.Stores))
	for _, s := range claims.Stores {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, ErrInvalidClaims
		}
		stores = append(stores, id)
	}

	caller := shared.NewCallerContext(callerID, tenantID, stores)
	return &caller, nil
}
