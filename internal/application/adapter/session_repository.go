// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/frontend/internal/domain/entity"
)

// SessionRepository defines the interface for session storage.
type SessionRepository interface {
	// Save stores a session until its expiry.
	Save(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session. Returns ErrSessionNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// Delete removes a session.
	Delete(ctx context.Context, id uuid.UUID) error
}
