// Package auth contains session-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finance-tracker/frontend/internal/application/adapter"
	"github.com/finance-tracker/frontend/internal/domain/entity"
	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Username string
	Password string
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	Token     string
	ExpiresAt time.Time
	Session   *entity.Session
}

// LoginUserUseCase exchanges credentials for a remote token and opens a session around it.
type LoginUserUseCase struct {
	authenticator adapter.RemoteAuthenticator
	sessionRepo   adapter.SessionRepository
	tokenService  adapter.TokenService
	sessionTTL    time.Duration
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	authenticator adapter.RemoteAuthenticator,
	sessionRepo adapter.SessionRepository,
	tokenService adapter.TokenService,
	sessionTTL time.Duration,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		authenticator: authenticator,
		sessionRepo:   sessionRepo,
		tokenService:  tokenService,
		sessionTTL:    sessionTTL,
	}
}

// Execute performs the user login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeMissingFields,
			"username and password are required",
			domainerror.ErrInvalidCredentials,
		)
	}

	remoteToken, err := uc.authenticator.ObtainToken(ctx, username, input.Password)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidCredentials) {
			return nil, domainerror.NewSessionError(
				domainerror.ErrCodeInvalidCredentials,
				"invalid username or password",
				domainerror.ErrInvalidCredentials,
			)
		}
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeLoginUnavailable,
			"could not reach the finance service",
			err,
		)
	}

	session := entity.NewSession(username, remoteToken, uc.sessionTTL)
	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	token, err := uc.tokenService.GenerateSessionToken(session.ID, session.Username, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	slog.Info("Session opened", "session_id", session.ID, "username", session.Username)

	return &LoginUserOutput{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		Session:   session,
	}, nil
}
