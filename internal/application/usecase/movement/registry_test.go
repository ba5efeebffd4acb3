package movement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/frontend/internal/domain/entity"
	"github.com/finance-tracker/frontend/internal/domain/valueobject"
)

func TestRegistry(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	loads := 0
	loader := func(context.Context, *entity.Session, bool) (*entity.CategoryCatalog, error) {
		loads++
		return testCatalog(), nil
	}

	newRegistry := func() *Registry {
		r := NewRegistry(newGatedCollection(seedRows(3, 3)), loader, DefaultRegistryConfig())
		r.now = func() time.Time { return now }
		return r
	}
	session := &entity.Session{ID: uuid.New(), Username: "ana"}

	t.Run("dashboard starts on the calendar year", func(t *testing.T) {
		r := newRegistry()
		vm := r.Get(context.Background(), session, ViewDashboard)
		vm.Wait()
		defer r.CloseSession(session.ID)

		snap := vm.Snapshot()
		from, _ := snap.Filters.DateFrom.Get()
		to, _ := snap.Filters.DateTo.Get()
		if valueobject.FormatDate(from) != "2024-01-01" || valueobject.FormatDate(to) != "2024-12-31" {
			t.Errorf("dashboard range = %s..%s", valueobject.FormatDate(from), valueobject.FormatDate(to))
		}
		if snap.Aggregates == nil {
			t.Error("expected aggregates after the first load")
		}
	})

	t.Run("movements view starts unfiltered and is reused", func(t *testing.T) {
		r := newRegistry()
		first := r.Get(context.Background(), session, ViewMovements)
		first.Wait()
		second := r.Get(context.Background(), session, ViewMovements)

		if first != second {
			t.Error("expected the same view-model for the same session and kind")
		}
		if !first.Snapshot().Filters.DateFrom.IsAll() {
			t.Error("movements view should start without a date range")
		}
		r.CloseSession(session.ID)
		if r.Len() != 0 {
			t.Errorf("expected no views after CloseSession, got %d", r.Len())
		}
	})

	t.Run("idle views are swept", func(t *testing.T) {
		r := newRegistry()
		r.Get(context.Background(), session, ViewMovements).Wait()
		other := &entity.Session{ID: uuid.New()}
		now = now.Add(45 * time.Minute)
		r.Get(context.Background(), other, ViewMovements).Wait()

		if n := r.Sweep(); n != 1 {
			t.Errorf("Sweep() = %d, want 1", n)
		}
		if r.Len() != 1 {
			t.Errorf("Len() = %d, want 1", r.Len())
		}
		r.CloseSession(other.ID)
	})

	t.Run("catalog failure still loads rows", func(t *testing.T) {
		r := NewRegistry(newGatedCollection(seedRows(3, 3)), func(context.Context, *entity.Session, bool) (*entity.CategoryCatalog, error) {
			return nil, errors.New("categories down")
		}, DefaultRegistryConfig())

		vm := r.Get(context.Background(), session, ViewMovements)
		vm.Wait()
		defer r.CloseSession(session.ID)

		if got := len(vm.Snapshot().Rows); got != 6 {
			t.Errorf("rows = %d, want 6", got)
		}
	})

	t.Run("unknown view kind", func(t *testing.T) {
		if _, err := ParseViewKind("reports"); err == nil {
			t.Error("expected an error")
		}
		if kind, err := ParseViewKind("dashboard"); err != nil || kind != ViewDashboard {
			t.Errorf("ParseViewKind(dashboard) = %v, %v", kind, err)
		}
	})

	if loads == 0 {
		t.Error("catalog loader never called")
	}
}
