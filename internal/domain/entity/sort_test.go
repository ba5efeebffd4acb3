package entity

import "testing"

func TestParseOrdering(t *testing.T) {
	for _, key := range SortKeys {
		t.Run(key.Ordering(), func(t *testing.T) {
			got, err := ParseOrdering(key.Ordering())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != key {
				t.Errorf("got %+v, want %+v", got, key)
			}
		})
	}

	t.Run("default is newest first", func(t *testing.T) {
		if DefaultSortKey.Ordering() != "-date" {
			t.Errorf("default ordering = %q", DefaultSortKey.Ordering())
		}
	})

	t.Run("rejects unknown field", func(t *testing.T) {
		if _, err := ParseOrdering("-category"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count int64
		size  int
		want  int
	}{
		{25, 10, 3},
		{30, 10, 3},
		{0, 10, 1},
		{1, 50, 1},
		{51, 50, 2},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.count, tt.size, got, tt.want)
		}
	}

	if (PageWindow{Number: 1, Size: 10}).TotalPages() != 0 {
		t.Error("unknown count should report 0 pages")
	}
}

func TestCategoryCatalog(t *testing.T) {
	catalog := NewCategoryCatalog([]*Category{
		{ID: "2", Name: "Salary", Type: CategoryTypeIncome},
		{ID: "1", Name: "Food", Type: CategoryTypeExpense},
		nil,
	})

	if catalog.Len() != 2 {
		t.Fatalf("Len() = %d", catalog.Len())
	}
	cats := catalog.Categories()
	if cats[0].Name != "Food" || cats[1].Name != "Salary" {
		t.Errorf("categories not ordered by name: %s, %s", cats[0].Name, cats[1].Name)
	}

	var nilCatalog *CategoryCatalog
	if _, ok := nilCatalog.Lookup("1"); ok {
		t.Error("nil catalog should know nothing")
	}
}

func TestQueryDescriptorKey(t *testing.T) {
	a := NewQueryDescriptor(map[string]string{"type": "income", "page": "1", "ordering": "-date"})
	b := NewQueryDescriptor(nil).With("ordering", "-date").With("page", "1").With("type", "income")

	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}
	if f := a.FilterParams(); f.Has(ParamPage) || f.Has(ParamOrdering) || !f.Has("type") {
		t.Errorf("FilterParams() = %q", f.Key())
	}
	if a.Key() != "ordering=-date&page=1&type=income" {
		t.Errorf("unexpected key %q", a.Key())
	}
}
