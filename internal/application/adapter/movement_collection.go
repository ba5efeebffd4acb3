// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/frontend/internal/domain/entity"
)

// MovementPage is one page of movements plus the filtered row count.
type MovementPage struct {
	Rows  []*entity.Movement
	Count int64

	// Paginated is false when the service returned every row as a bare list.
	Paginated bool
}

// MovementCollection defines the remote movement and category collections.
// Every call carries the session it is made on behalf of.
type MovementCollection interface {
	// ListMovements fetches the page described by query.
	ListMovements(ctx context.Context, session *entity.Session, query entity.QueryDescriptor) (*MovementPage, error)

	// Summary fetches KPI totals for the filter parameters.
	// Returns ErrEndpointNotFound when the service has no summary endpoint.
	Summary(ctx context.Context, session *entity.Session, filters entity.QueryDescriptor) (*entity.KPI, error)

	// MonthlySummary fetches the per-month series for the date parameters.
	// Returns ErrEndpointNotFound when the service has no monthly summary endpoint.
	MonthlySummary(ctx context.Context, session *entity.Session, filters entity.QueryDescriptor) ([]entity.MonthlyBucket, error)

	// ListCategories fetches every category visible to the session.
	ListCategories(ctx context.Context, session *entity.Session) ([]*entity.Category, error)
}

// RemoteAuthenticator exchanges credentials for a collection service token.
type RemoteAuthenticator interface {
	// ObtainToken returns the remote token for the credentials.
	ObtainToken(ctx context.Context, username, password string) (string, error)
}
