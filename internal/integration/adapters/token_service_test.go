package adapters

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/frontend/internal/domain/error"
)

func TestTokenService(t *testing.T) {
	service := NewTokenService("test-secret")
	sessionID := uuid.New()

	t.Run("round trip", func(t *testing.T) {
		token, err := service.GenerateSessionToken(sessionID, "ana", time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		claims, err := service.ValidateSessionToken(token.Token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.SessionID != sessionID || claims.Username != "ana" {
			t.Errorf("unexpected claims %+v", claims)
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, _ := service.GenerateSessionToken(sessionID, "ana", time.Now().Add(-time.Minute))
		if _, err := service.ValidateSessionToken(token.Token); !errors.Is(err, domainerror.ErrExpiredToken) {
			t.Errorf("expected ErrExpiredToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := NewTokenService("other-secret").GenerateSessionToken(sessionID, "ana", time.Now().Add(time.Hour))
		if _, err := service.ValidateSessionToken(token.Token); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := service.ValidateSessionToken("not-a-jwt"); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
