package movement

import (
	"testing"
	"time"

	"github.com/finance-tracker/frontend/internal/domain/entity"
	"github.com/finance-tracker/frontend/internal/domain/valueobject"
)

func testCatalog() *entity.CategoryCatalog {
	return entity.NewCategoryCatalog([]*entity.Category{
		{ID: "1", Name: "Salary", Type: entity.CategoryTypeIncome},
		{ID: "2", Name: "Food", Type: entity.CategoryTypeExpense},
	})
}

func TestFilterSet_TypeCategoryCoupling(t *testing.T) {
	income := valueobject.Only(entity.CategoryTypeIncome)
	expense := valueobject.Only(entity.CategoryTypeExpense)

	tests := []struct {
		name         string
		apply        func(s *FilterSet)
		wantCategory valueobject.Optional[string]
	}{
		{
			name: "setting a contradicting type clears the category",
			apply: func(s *FilterSet) {
				s.SetCategory(valueobject.Only("2"))
				s.SetType(income)
			},
			wantCategory: valueobject.All[string](),
		},
		{
			name: "setting a contradicting category is cleared",
			apply: func(s *FilterSet) {
				s.SetType(income)
				s.SetCategory(valueobject.Only("2"))
			},
			wantCategory: valueobject.All[string](),
		},
		{
			name: "matching type keeps the category",
			apply: func(s *FilterSet) {
				s.SetType(expense)
				s.SetCategory(valueobject.Only("2"))
			},
			wantCategory: valueobject.Only("2"),
		},
		{
			name: "type all keeps any category",
			apply: func(s *FilterSet) {
				s.SetCategory(valueobject.Only("1"))
				s.SetType(valueobject.All[entity.CategoryType]())
			},
			wantCategory: valueobject.Only("1"),
		},
		{
			name: "unknown category is kept",
			apply: func(s *FilterSet) {
				s.SetType(income)
				s.SetCategory(valueobject.Only("99"))
			},
			wantCategory: valueobject.Only("99"),
		},
		{
			name: "unrelated change rechecks the pair",
			apply: func(s *FilterSet) {
				s.SetType(income)
				s.SetCategory(valueobject.Only("2"))
				s.SetSearch(valueobject.Only("rent"))
			},
			wantCategory: valueobject.All[string](),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFilterSet()
			s.SetCatalog(testCatalog())
			tt.apply(s)

			if got := s.Filters().Category; got != tt.wantCategory {
				t.Errorf("category = %+v, want %+v", got, tt.wantCategory)
			}
		})
	}

	t.Run("catalog arriving later resolves the conflict", func(t *testing.T) {
		s := NewFilterSet()
		s.SetType(income)
		s.SetCategory(valueobject.Only("2"))
		if s.Filters().Category.IsAll() {
			t.Fatal("category cleared before its type was known")
		}

		s.SetCatalog(testCatalog())
		if !s.Filters().Category.IsAll() {
			t.Error("expected category to be cleared once the catalog is known")
		}
	})
}

func TestFilterSet_ClearAll(t *testing.T) {
	s := NewFilterSet()
	s.SetDateFrom(valueobject.Only(valueobject.NewDate(2024, time.January, 1)))
	s.SetSearch(valueobject.Only("coffee"))

	s.ClearAll()
	first := s.Filters()
	s.ClearAll()

	if first != (entity.Filters{}) || s.Filters() != first {
		t.Errorf("ClearAll not idempotent: %+v / %+v", first, s.Filters())
	}
}

func TestFilterSet_DatesAreCalendarDays(t *testing.T) {
	s := NewFilterSet()
	s.SetDateTo(valueobject.Only(time.Date(2024, time.March, 31, 22, 15, 0, 0, time.UTC)))

	d, ok := s.Filters().DateTo.Get()
	if !ok || !d.Equal(valueobject.NewDate(2024, time.March, 31)) {
		t.Errorf("DateTo = %v", d)
	}
}
