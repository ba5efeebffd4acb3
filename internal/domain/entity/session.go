package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the explicit authentication context handed to the collection service.
type Session struct {
	ID          uuid.UUID
	Username    string
	RemoteToken string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// NewSession creates a session for a remote token valid for ttl.
func NewSession(username, remoteToken string, ttl time.Duration) *Session {
	now := time.Now().UTC()

	return &Session{
		ID:          uuid.New(),
		Username:    username,
		RemoteToken: remoteToken,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}
