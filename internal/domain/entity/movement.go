package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement represents a dated monetary transaction.
type Movement struct {
	ID          string
	CategoryID  *string // Nil only for rows the remote returned without a category
	Date        time.Time
	Amount      decimal.Decimal // Always positive, sign comes from the category type
	Description string
}

// ResolveCategory returns the movement's category from the catalog, if any.
func (m *Movement) ResolveCategory(catalog *CategoryCatalog) (*Category, bool) {
	if m.CategoryID == nil {
		return nil, false
	}
	return catalog.Lookup(*m.CategoryID)
}

// SignedAmount returns the amount negated for expense categories.
func (m *Movement) SignedAmount(catalog *CategoryCatalog) decimal.Decimal {
	if cat, ok := m.ResolveCategory(catalog); ok && cat.Type == CategoryTypeExpense {
		return m.Amount.Neg()
	}
	return m.Amount
}
