package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/frontend/internal/application/adapter"
	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
)

type fakeCollection struct {
	adapter.MovementCollection
	categories []*entity.Category
	err        error
	calls      int
}

func (c *fakeCollection) ListCategories(context.Context, *entity.Session) ([]*entity.Category, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.categories, nil
}

type memoryCache struct {
	entries map[uuid.UUID][]*entity.Category
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[uuid.UUID][]*entity.Category)}
}

func (c *memoryCache) Get(_ context.Context, id uuid.UUID) ([]*entity.Category, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	categories, ok := c.entries[id]
	return categories, ok, nil
}

func (c *memoryCache) Set(_ context.Context, id uuid.UUID, categories []*entity.Category) error {
	c.entries[id] = categories
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, id uuid.UUID) error {
	delete(c.entries, id)
	return nil
}

var (
	salary = &entity.Category{ID: "1", Name: "Salary", Type: entity.CategoryTypeIncome}
	rent   = &entity.Category{ID: "2", Name: "Rent", Type: entity.CategoryTypeExpense}
)

func TestListCategoriesUseCase(t *testing.T) {
	session := entity.NewSession("ana", "remote-token", time.Hour)

	t.Run("miss loads remotely and fills the cache", func(t *testing.T) {
		collection := &fakeCollection{categories: []*entity.Category{salary, rent}}
		cache := newMemoryCache()
		uc := NewListCategoriesUseCase(collection, cache)

		out, err := uc.Execute(context.Background(), ListCategoriesInput{Session: session})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Cached {
			t.Error("expected a remote load")
		}
		if out.Catalog.Len() != 2 {
			t.Errorf("expected 2 categories, got %d", out.Catalog.Len())
		}
		if len(cache.entries[session.ID]) != 2 {
			t.Error("expected the catalog to be cached")
		}
	})

	t.Run("hit skips the remote", func(t *testing.T) {
		collection := &fakeCollection{}
		cache := newMemoryCache()
		cache.entries[session.ID] = []*entity.Category{rent}
		uc := NewListCategoriesUseCase(collection, cache)

		out, err := uc.Execute(context.Background(), ListCategoriesInput{Session: session})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Cached || collection.calls != 0 {
			t.Errorf("expected cached result without remote calls, got cached=%v calls=%d", out.Cached, collection.calls)
		}
	})

	t.Run("fresh bypasses the cache", func(t *testing.T) {
		collection := &fakeCollection{categories: []*entity.Category{salary, rent}}
		cache := newMemoryCache()
		cache.entries[session.ID] = []*entity.Category{rent}
		uc := NewListCategoriesUseCase(collection, cache)

		out, err := uc.Execute(context.Background(), ListCategoriesInput{Session: session, Fresh: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Cached || out.Catalog.Len() != 2 {
			t.Errorf("expected fresh catalog of 2, got cached=%v len=%d", out.Cached, out.Catalog.Len())
		}
	})

	t.Run("cache failure falls through to the remote", func(t *testing.T) {
		collection := &fakeCollection{categories: []*entity.Category{salary}}
		cache := newMemoryCache()
		cache.getErr = errors.New("connection refused")
		uc := NewListCategoriesUseCase(collection, cache)

		out, err := uc.Execute(context.Background(), ListCategoriesInput{Session: session})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Catalog.Len() != 1 {
			t.Errorf("expected 1 category, got %d", out.Catalog.Len())
		}
	})

	t.Run("remote failure is returned", func(t *testing.T) {
		collection := &fakeCollection{err: domainerror.ErrCollectionUnavailable}
		uc := NewListCategoriesUseCase(collection, newMemoryCache())

		_, err := uc.Execute(context.Background(), ListCategoriesInput{Session: session})
		if !errors.Is(err, domainerror.ErrCollectionUnavailable) {
			t.Errorf("expected ErrCollectionUnavailable, got %v", err)
		}
	})
}

func TestGetCategoryUseCase(t *testing.T) {
	session := entity.NewSession("ana", "remote-token", time.Hour)

	t.Run("found in cache", func(t *testing.T) {
		collection := &fakeCollection{}
		cache := newMemoryCache()
		cache.entries[session.ID] = []*entity.Category{salary, rent}
		uc := NewGetCategoryUseCase(NewListCategoriesUseCase(collection, cache))

		cat, err := uc.Execute(context.Background(), GetCategoryInput{Session: session, CategoryID: "2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cat.Name != "Rent" {
			t.Errorf("expected Rent, got %q", cat.Name)
		}
	})

	t.Run("stale cache is refreshed once", func(t *testing.T) {
		collection := &fakeCollection{categories: []*entity.Category{salary, rent}}
		cache := newMemoryCache()
		cache.entries[session.ID] = []*entity.Category{salary}
		uc := NewGetCategoryUseCase(NewListCategoriesUseCase(collection, cache))

		cat, err := uc.Execute(context.Background(), GetCategoryInput{Session: session, CategoryID: "2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cat.Name != "Rent" || collection.calls != 1 {
			t.Errorf("expected Rent after one remote call, got %q after %d", cat.Name, collection.calls)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		collection := &fakeCollection{categories: []*entity.Category{salary}}
		uc := NewGetCategoryUseCase(NewListCategoriesUseCase(collection, newMemoryCache()))

		_, err := uc.Execute(context.Background(), GetCategoryInput{Session: session, CategoryID: "99"})
		var catErr *domainerror.CategoryError
		if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeCategoryNotFound {
			t.Fatalf("expected CategoryNotFound, got %v", err)
		}
		if collection.calls != 1 {
			t.Errorf("a remote miss must not be retried, got %d calls", collection.calls)
		}
	})
}
