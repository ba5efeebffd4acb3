package movement

import (
	"testing"
	"time"

	"github.com/finance-tracker/frontend/internal/domain/entity"
	"github.com/finance-tracker/frontend/internal/domain/valueobject"
)

func TestBuildQuery(t *testing.T) {
	page := entity.PageWindow{Number: 2, Size: 20}

	t.Run("defaults omit every filter", func(t *testing.T) {
		q := BuildQuery(entity.Filters{}, entity.DefaultSortKey, page)

		if q.Key() != "ordering=-date&page=2&page_size=20" {
			t.Errorf("unexpected descriptor %q", q.Key())
		}
		if q.FilterParams().Len() != 0 {
			t.Errorf("expected no filter params, got %q", q.FilterParams().Key())
		}
	})

	t.Run("blank search and category are omitted", func(t *testing.T) {
		filters := entity.Filters{
			Search:   valueobject.Only("   "),
			Category: valueobject.Only(""),
		}
		q := BuildQuery(filters, entity.DefaultSortKey, page)
		if q.Has("search") || q.Has("category") {
			t.Errorf("blank values leaked into %q", q.Key())
		}
	})

	t.Run("every filter is encoded", func(t *testing.T) {
		filters := entity.Filters{
			DateFrom: valueobject.Only(valueobject.NewDate(2024, time.January, 1)),
			DateTo:   valueobject.Only(valueobject.NewDate(2024, time.March, 31)),
			Type:     valueobject.Only(entity.CategoryTypeExpense),
			Category: valueobject.Only("7"),
			Search:   valueobject.Only(" rent "),
		}
		sort := entity.SortKey{Field: entity.SortByAmount, Direction: entity.SortAsc}
		q := BuildQuery(filters, sort, page)

		want := map[string]string{
			"date_from": "2024-01-01",
			"date_to":   "2024-03-31",
			"type":      "expense",
			"category":  "7",
			"search":    "rent",
			"ordering":  "amount",
			"page":      "2",
			"page_size": "20",
		}
		if q.Len() != len(want) {
			t.Errorf("expected %d params, got %q", len(want), q.Key())
		}
		for k, v := range want {
			if got, _ := q.Get(k); got != v {
				t.Errorf("%s = %q, want %q", k, got, v)
			}
		}
	})

	t.Run("one date bound alone", func(t *testing.T) {
		filters := entity.Filters{DateTo: valueobject.Only(valueobject.NewDate(2024, time.June, 30))}
		q := BuildFilterQuery(filters)
		if q.Key() != "date_to=2024-06-30" {
			t.Errorf("unexpected descriptor %q", q.Key())
		}
	})

	t.Run("aggregate query reuses the page filters", func(t *testing.T) {
		filters := entity.Filters{Type: valueobject.Only(entity.CategoryTypeIncome)}
		pageQuery := BuildQuery(filters, entity.DefaultSortKey, page)
		if pageQuery.FilterParams().Key() != BuildFilterQuery(filters).Key() {
			t.Errorf("%q != %q", pageQuery.FilterParams().Key(), BuildFilterQuery(filters).Key())
		}
	})
}
