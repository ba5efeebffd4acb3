// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"time"

	"github.com/google/uuid"
)

// SessionToken is a signed token identifying a session.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenClaims represents the claims contained in a session token.
type TokenClaims struct {
	SessionID uuid.UUID
	Username  string
	ExpiresAt time.Time
}

// TokenService defines the interface for session token operations.
type TokenService interface {
	// GenerateSessionToken signs a token for the session.
	GenerateSessionToken(sessionID uuid.UUID, username string, expiresAt time.Time) (*SessionToken, error)

	// ValidateSessionToken validates a token and returns its claims.
	ValidateSessionToken(token string) (*TokenClaims, error)
}
