package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestAsFetchError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode FetchErrorCode
	}{
		{"unauthorized", fmt.Errorf("list movements: %w", ErrRemoteUnauthorized), ErrCodeRemoteUnauthorized},
		{"page out of range", ErrPageOutOfRange, ErrCodePageOutOfRange},
		{"missing endpoint", ErrEndpointNotFound, ErrCodeEndpointNotFound},
		{"bad body", ErrInvalidResponse, ErrCodeInvalidResponse},
		{"server error", ErrCollectionRejected, ErrCodeCollectionRejected},
		{"network", ErrCollectionUnavailable, ErrCodeCollectionUnavailable},
		{"anything else", errors.New("boom"), ErrCodeFetchInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AsFetchError(tt.err)
			if got.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, got.Code)
			}
			if got.Message == "" {
				t.Error("expected a user-displayable message")
			}
			if !errors.Is(got, tt.err) {
				t.Error("expected the original error to stay in the chain")
			}
		})
	}

	t.Run("keeps an existing fetch error", func(t *testing.T) {
		orig := NewFetchError(ErrCodeCollectionRejected, "custom", nil)
		if got := AsFetchError(fmt.Errorf("wrapped: %w", orig)); got != orig {
			t.Errorf("expected the same FetchError back, got %v", got)
		}
	})

	t.Run("nil stays nil", func(t *testing.T) {
		if AsFetchError(nil) != nil {
			t.Error("expected nil")
		}
	})
}
