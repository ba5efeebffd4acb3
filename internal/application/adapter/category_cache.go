// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/frontend/internal/domain/entity"
)

// CategoryCache stores the category catalog fetched for a session.
type CategoryCache interface {
	// Get returns the cached categories and whether they were found.
	Get(ctx context.Context, sessionID uuid.UUID) ([]*entity.Category, bool, error)

	// Set stores categories for the session.
	Set(ctx context.Context, sessionID uuid.UUID, categories []*entity.Category) error

	// Invalidate drops the cached categories of the session.
	Invalidate(ctx context.Context, sessionID uuid.UUID) error
}
