package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/frontend/internal/application/adapter"
	"github.com/finance-tracker/frontend/internal/domain/entity"
	"github.com/finance-tracker/frontend/internal/integration/persistence/model"
)

const categoryKeyPrefix = "categories:"

// categoryCache implements the CategoryCache interface.
type categoryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCategoryCache creates a new redis-backed category cache.
func NewCategoryCache(rdb *redis.Client, ttl time.Duration) adapter.CategoryCache {
	return &categoryCache{
		rdb: rdb,
		ttl: ttl,
	}
}

// Get returns the cached categories and whether they were found.
func (c *categoryCache) Get(ctx context.Context, sessionID uuid.UUID) ([]*entity.Category, bool, error) {
	payload, err := c.rdb.Get(ctx, categoryKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var models []model.CategoryModel
	if err := json.Unmarshal(payload, &models); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached categories: %w", err)
	}

	categories := make([]*entity.Category, len(models))
	for i := range models {
		categories[i] = models[i].ToEntity()
	}
	return categories, true, nil
}

// Set stores categories for the session.
func (c *categoryCache) Set(ctx context.Context, sessionID uuid.UUID, categories []*entity.Category) error {
	models := make([]*model.CategoryModel, len(categories))
	for i, cat := range categories {
		models[i] = model.CategoryFromEntity(cat)
	}

	payload, err := json.Marshal(models)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	return c.rdb.Set(ctx, categoryKey(sessionID), payload, c.ttl).Err()
}

// Invalidate drops the cached categories of the session.
func (c *categoryCache) Invalidate(ctx context.Context, sessionID uuid.UUID) error {
	return c.rdb.Del(ctx, categoryKey(sessionID)).Err()
}

func categoryKey(sessionID uuid.UUID) string {
	return categoryKeyPrefix + sessionID.String()
}
