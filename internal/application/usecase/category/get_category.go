package category

import (
	"context"

	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
)

// GetCategoryInput represents the input for getting a category.
type GetCategoryInput struct {
	Session    *entity.Session
	CategoryID string
}

// GetCategoryUseCase looks a category up in the session catalog.
type GetCategoryUseCase struct {
	list *ListCategoriesUseCase
}

// NewGetCategoryUseCase creates a new GetCategoryUseCase instance.
func NewGetCategoryUseCase(list *ListCategoriesUseCase) *GetCategoryUseCase {
	return &GetCategoryUseCase{list: list}
}

// Execute returns the category, refreshing the catalog once on a cache miss.
func (uc *GetCategoryUseCase) Execute(ctx context.Context, input GetCategoryInput) (*entity.Category, error) {
	out, err := uc.list.Execute(ctx, ListCategoriesInput{Session: input.Session})
	if err != nil {
		return nil, err
	}
	if cat, ok := out.Catalog.Lookup(input.CategoryID); ok {
		return cat, nil
	}

	if out.Cached {
		out, err = uc.list.Execute(ctx, ListCategoriesInput{Session: input.Session, Fresh: true})
		if err != nil {
			return nil, err
		}
		if cat, ok := out.Catalog.Lookup(input.CategoryID); ok {
			return cat, nil
		}
	}

	return nil, domainerror.NewCategoryNotFound(input.CategoryID)
}
