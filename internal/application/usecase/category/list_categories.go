// Package category contains category catalog use cases.
package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/frontend/internal/application/adapter"
	"github.com/finance-tracker/frontend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	Session *entity.Session
	// Fresh bypasses the cache.
	Fresh bool
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Catalog *entity.CategoryCatalog
	Cached  bool
}

// ListCategoriesUseCase loads the session's category catalog, cache first.
type ListCategoriesUseCase struct {
	collection adapter.MovementCollection
	cache      adapter.CategoryCache
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(collection adapter.MovementCollection, cache adapter.CategoryCache) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		collection: collection,
		cache:      cache,
	}
}

// Execute returns the category catalog.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	if !input.Fresh {
		categories, found, err := uc.cache.Get(ctx, input.Session.ID)
		if err != nil {
			// Log error but fall through to the remote
			slog.Warn("Category cache read failed", "session_id", input.Session.ID, "error", err)
		} else if found {
			return &ListCategoriesOutput{Catalog: entity.NewCategoryCatalog(categories), Cached: true}, nil
		}
	}

	categories, err := uc.collection.ListCategories(ctx, input.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if err := uc.cache.Set(ctx, input.Session.ID, categories); err != nil {
		slog.Warn("Category cache write failed", "session_id", input.Session.ID, "error", err)
	}

	return &ListCategoriesOutput{Catalog: entity.NewCategoryCatalog(categories)}, nil
}
