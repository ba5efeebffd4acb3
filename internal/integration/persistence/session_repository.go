// Package persistence implements repository interfaces on top of redis.
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
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
	"github.com/finance-tracker/frontend/internal/integration/persistence/model"
)

const sessionKeyPrefix = "session:"

// sessionRepository implements the SessionRepository interface.
type sessionRepository struct {
	rdb *redis.Client
}

// NewSessionRepository creates a new session repository instance.
func NewSessionRepository(rdb *redis.Client) adapter.SessionRepository {
	return &sessionRepository{
		rdb: rdb,
	}
}

// Save stores a session until its expiry.
func (r *sessionRepository) Save(ctx context.Context, session *entity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return domainerror.ErrSessionExpired
	}

	payload, err := json.Marshal(model.SessionFromEntity(session))
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return r.rdb.Set(ctx, sessionKey(session.ID), payload, ttl).Err()
}

// FindByID retrieves a session by its ID.
func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	payload, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerror.ErrSessionNotFound
		}
		return nil, err
	}

	var m model.SessionModel
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return m.ToEntity(), nil
}

// Delete removes a session.
func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.rdb.Del(ctx, sessionKey(id)).Err()
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}
