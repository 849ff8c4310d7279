package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khallark/studio-sub002/internal/domain/shared"
	"github.com/khallark/studio-sub002/internal/infrastructure/auth"
	"github.com/khallark/studio-sub002/internal/interfaces/http/dto"
)

// JWT context keys
const (
	CallerKey     = "caller_context"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTAuth creates JWT authentication middleware. On success the verified
// caller context is stored in the gin context; handlers pass it explicitly
// into every core operation.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		caller, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(CallerKey, *caller)
		c.Next()
	}
}

// GetCaller retrieves the verified caller context set by JWTAuth
func GetCaller(c *gin.Context) (shared.CallerContext, bool) {
	v, ok := c.Get(CallerKey)
	if !ok {
		return shared.CallerContext{}, false
	}
	caller, ok := v.(shared.CallerContext)
	return caller, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	requestID := c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, requestID))
}
