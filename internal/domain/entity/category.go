// Package entity defines the core business entities for the domain layer.
package entity

import "sort"

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// IsValid reports whether t is one of the known category types.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// Category represents a movement category as exposed by the collection service.
type Category struct {
	ID   string
	Name string
	Type CategoryType
}

// CategoryCatalog is a read-only lookup of the categories known to a session.
type CategoryCatalog struct {
	byID map[string]*Category
}

// NewCategoryCatalog indexes categories by ID. Later duplicates win.
func NewCategoryCatalog(categories []*Category) *CategoryCatalog {
	byID := make(map[string]*Category, len(categories))
	for _, c := range categories {
		if c == nil {
			continue
		}
		byID[c.ID] = c
	}
	return &CategoryCatalog{byID: byID}
}

// Lookup returns the category with the given ID, if known. Safe on a nil catalog.
func (c *CategoryCatalog) Lookup(id string) (*Category, bool) {
	if c == nil {
		return nil, false
	}
	cat, ok := c.byID[id]
	return cat, ok
}

// Len returns the number of known categories.
func (c *CategoryCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byID)
}

// Categories returns the catalog ordered by name, then ID.
func (c *CategoryCatalog) Categories() []*Category {
	if c == nil {
		return nil
	}
	out := make([]*Category, 0, len(c.byID))
	for _, cat := range c.byID {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
