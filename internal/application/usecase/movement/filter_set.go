// Package movement contains the query-state use cases behind the movements and dashboard views.
package movement

import (
	"time"

	"github.com/finance-tracker/frontend/internal/domain/entity"
	"github.com/finance-tracker/frontend/internal/domain/valueobject"
)

// FilterSet holds the filter values of one view and keeps the type and
// category filters consistent with each other. It performs no I/O.
type FilterSet struct {
	filters entity.Filters
	catalog *entity.CategoryCatalog
}

// NewFilterSet creates a FilterSet with every field unconstrained.
func NewFilterSet() *FilterSet {
	return &FilterSet{}
}

// Filters returns the current filter values.
func (s *FilterSet) Filters() entity.Filters {
	return s.filters
}

// SetCatalog replaces the category catalog used to resolve category types.
func (s *FilterSet) SetCatalog(catalog *entity.CategoryCatalog) {
	s.catalog = catalog
	s.reconcile()
}

// SetDateFrom replaces the lower date bound.
func (s *FilterSet) SetDateFrom(d valueobject.Optional[time.Time]) {
	s.filters.DateFrom = dayOf(d)
	s.reconcile()
}

// SetDateTo replaces the upper date bound.
func (s *FilterSet) SetDateTo(d valueobject.Optional[time.Time]) {
	s.filters.DateTo = dayOf(d)
	s.reconcile()
}

// SetRange replaces both date bounds.
func (s *FilterSet) SetRange(r valueobject.DateRange) {
	s.filters.DateFrom = valueobject.Only(valueobject.Day(r.From))
	s.filters.DateTo = valueobject.Only(valueobject.Day(r.To))
	s.reconcile()
}

// SetType replaces the category type filter.
func (s *FilterSet) SetType(t valueobject.Optional[entity.CategoryType]) {
	s.filters.Type = t
	s.reconcile()
}

// SetCategory replaces the category filter.
func (s *FilterSet) SetCategory(c valueobject.Optional[string]) {
	s.filters.Category = c
	s.reconcile()
}

// SetSearch replaces the free-text search.
func (s *FilterSet) SetSearch(q valueobject.Optional[string]) {
	s.filters.Search = q
	s.reconcile()
}

// ClearAll resets every field to unconstrained.
func (s *FilterSet) ClearAll() {
	s.filters = entity.Filters{}
}

// reconcile clears a concrete category whose type contradicts a concrete type filter.
// Categories the catalog does not know are left alone.
func (s *FilterSet) reconcile() {
	t, ok := s.filters.Type.Get()
	if !ok {
		return
	}
	id, ok := s.filters.Category.Get()
	if !ok {
		return
	}
	if cat, known := s.catalog.Lookup(id); known && cat.Type != t {
		s.filters.Category = valueobject.All[string]()
	}
}

func dayOf(d valueobject.Optional[time.Time]) valueobject.Optional[time.Time] {
	if v, ok := d.Get(); ok {
		return valueobject.Only(valueobject.Day(v))
	}
	return d
}
