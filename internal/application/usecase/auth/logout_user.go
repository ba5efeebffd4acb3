package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/frontend/internal/application/adapter"
)

// SessionViews releases the live views held for a session.
type SessionViews interface {
	CloseSession(sessionID uuid.UUID)
}

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	SessionID uuid.UUID
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	sessionRepo   adapter.SessionRepository
	categoryCache adapter.CategoryCache
	views         SessionViews
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(sessionRepo adapter.SessionRepository, categoryCache adapter.CategoryCache, views SessionViews) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		sessionRepo:   sessionRepo,
		categoryCache: categoryCache,
		views:         views,
	}
}

// Execute closes the session's views and forgets the session.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	uc.views.CloseSession(input.SessionID)

	// Ignore errors as the session might already be gone
	if err := uc.categoryCache.Invalidate(ctx, input.SessionID); err != nil {
		slog.Warn("Failed to drop cached categories", "session_id", input.SessionID, "error", err)
	}
	_ = uc.sessionRepo.Delete(ctx, input.SessionID)

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
