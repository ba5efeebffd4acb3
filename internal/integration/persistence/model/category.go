package model

import "github.com/finance-tracker/frontend/internal/domain/entity"

// CategoryModel is the cached record of a category.
type CategoryModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:   m.ID,
		Name: m.Name,
		Type: entity.CategoryType(m.Type),
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:   category.ID,
		Name: category.Name,
		Type: string(category.Type),
	}
}
