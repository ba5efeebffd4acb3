// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/frontend/internal/application/usecase/auth"
	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
	"github.com/finance-tracker/frontend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// SessionKey is the context key for the authenticated session.
	SessionKey ContextKey = "session"
)

// AuthMiddleware provides session token authentication middleware.
type AuthMiddleware struct {
	resolveSession *auth.ResolveSessionUseCase
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(resolveSession *auth.ResolveSessionUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		resolveSession: resolveSession,
	}
}

// Authenticate returns a Gin middleware handler that enforces session authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Token is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			return
		}

		session, err := m.resolveSession.Execute(c.Request.Context(), token)
		if err != nil {
			var sessionErr *domainerror.SessionError
			if errors.As(err, &sessionErr) && sessionErr.Code == domainerror.ErrCodeSessionInternalError {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.ErrorResponse{
					Error: "Session store unavailable",
					Code:  string(sessionErr.Code),
				})
				return
			}
			code := domainerror.ErrCodeInvalidToken
			if sessionErr != nil {
				code = sessionErr.Code
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(code),
			})
			return
		}

		c.Set(string(SessionKey), session)
		c.Next()
	}
}

// GetSessionFromContext extracts the authenticated session from the Gin context.
func GetSessionFromContext(c *gin.Context) (*entity.Session, bool) {
	value, exists := c.Get(string(SessionKey))
	if !exists {
		return nil, false
	}
	session, ok := value.(*entity.Session)
	return session, ok && session != nil
}
