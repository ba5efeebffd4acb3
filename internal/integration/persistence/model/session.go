// Package model defines the records stored by the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/frontend/internal/domain/entity"
)

// SessionModel is the redis record of a session.
type SessionModel struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	RemoteToken string    `json:"remote_token"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ToEntity converts a SessionModel to a domain Session entity.
func (m *SessionModel) ToEntity() *entity.Session {
	return &entity.Session{
		ID:          m.ID,
		Username:    m.Username,
		RemoteToken: m.RemoteToken,
		CreatedAt:   m.CreatedAt,
		ExpiresAt:   m.ExpiresAt,
	}
}

// SessionFromEntity creates a SessionModel from a domain Session entity.
func SessionFromEntity(session *entity.Session) *SessionModel {
	return &SessionModel{
		ID:          session.ID,
		Username:    session.Username,
		RemoteToken: session.RemoteToken,
		CreatedAt:   session.CreatedAt,
		ExpiresAt:   session.ExpiresAt,
	}
}
