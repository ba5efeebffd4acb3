package auth

import (
	"context"
	"errors"

	"github.com/finance-tracker/frontend/internal/application/adapter"
	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
)

// ResolveSessionUseCase turns a bearer token into its live session.
type ResolveSessionUseCase struct {
	sessionRepo  adapter.SessionRepository
	tokenService adapter.TokenService
}

// NewResolveSessionUseCase creates a new ResolveSessionUseCase instance.
func NewResolveSessionUseCase(sessionRepo adapter.SessionRepository, tokenService adapter.TokenService) *ResolveSessionUseCase {
	return &ResolveSessionUseCase{
		sessionRepo:  sessionRepo,
		tokenService: tokenService,
	}
}

// Execute validates the token and loads the session it names.
func (uc *ResolveSessionUseCase) Execute(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := uc.tokenService.ValidateSessionToken(token)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpiredToken) {
			return nil, domainerror.NewSessionError(domainerror.ErrCodeExpiredToken, "token has expired", err)
		}
		return nil, domainerror.NewSessionError(domainerror.ErrCodeInvalidToken, "invalid token", err)
	}

	session, err := uc.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSessionNotFound) {
			return nil, domainerror.NewSessionError(domainerror.ErrCodeSessionNotFound, "session not found", err)
		}
		if errors.Is(err, domainerror.ErrSessionExpired) {
			return nil, domainerror.NewSessionError(domainerror.ErrCodeExpiredToken, "session has expired", err)
		}
		return nil, domainerror.NewSessionError(domainerror.ErrCodeSessionInternalError, "failed to load session", err)
	}

	if session.IsExpired() {
		return nil, domainerror.NewSessionError(domainerror.ErrCodeExpiredToken, "session has expired", domainerror.ErrSessionExpired)
	}

	return session, nil
}
