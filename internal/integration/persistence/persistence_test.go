package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		_, rdb := newTestRedis(t)
		repo := NewSessionRepository(rdb)

		session := entity.NewSession("ana", "remote-token", time.Hour)
		if err := repo.Save(ctx, session); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		found, err := repo.FindByID(ctx, session.ID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if found.Username != "ana" || found.RemoteToken != "remote-token" || !found.ExpiresAt.Equal(session.ExpiresAt) {
			t.Errorf("unexpected session %+v", found)
		}

		if err := repo.Delete(ctx, session.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := repo.FindByID(ctx, session.ID); !errors.Is(err, domainerror.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("expires with the session", func(t *testing.T) {
		mr, rdb := newTestRedis(t)
		repo := NewSessionRepository(rdb)

		session := entity.NewSession("ana", "remote-token", time.Minute)
		if err := repo.Save(ctx, session); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		mr.FastForward(2 * time.Minute)

		if _, err := repo.FindByID(ctx, session.ID); !errors.Is(err, domainerror.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("refuses an expired session", func(t *testing.T) {
		_, rdb := newTestRedis(t)
		repo := NewSessionRepository(rdb)

		session := entity.NewSession("ana", "remote-token", -time.Minute)
		if err := repo.Save(ctx, session); !errors.Is(err, domainerror.ErrSessionExpired) {
			t.Errorf("expected ErrSessionExpired, got %v", err)
		}
	})
}

func TestCategoryCache(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	cache := NewCategoryCache(rdb, 5*time.Minute)
	sessionID := uuid.New()

	if _, found, err := cache.Get(ctx, sessionID); err != nil || found {
		t.Fatalf("expected a miss, got found=%v err=%v", found, err)
	}

	categories := []*entity.Category{
		{ID: "1", Name: "Salary", Type: entity.CategoryTypeIncome},
		{ID: "2", Name: "Food", Type: entity.CategoryTypeExpense},
	}
	if err := cache.Set(ctx, sessionID, categories); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found, err := cache.Get(ctx, sessionID)
	if err != nil || !found {
		t.Fatalf("expected a hit, got found=%v err=%v", found, err)
	}
	if len(got) != 2 || got[1].Name != "Food" || got[1].Type != entity.CategoryTypeExpense {
		t.Errorf("unexpected categories %+v", got)
	}

	mr.FastForward(10 * time.Minute)
	if _, found, _ := cache.Get(ctx, sessionID); found {
		t.Error("expected the entry to expire")
	}

	_ = cache.Set(ctx, sessionID, categories)
	if err := cache.Invalidate(ctx, sessionID); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, found, _ := cache.Get(ctx, sessionID); found {
		t.Error("expected a miss after Invalidate")
	}
}
