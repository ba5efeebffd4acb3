package error

import "errors"

// Session domain errors.
var (
	// ErrInvalidCredentials is returned when the remote rejects the login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionNotFound is returned when a session does not exist or was revoked.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session is past its expiry.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidToken is returned when a session token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a session token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

// SessionErrorCode defines error codes for session errors.
// Format: SES-XXYYYY where XX is category and YYYY is specific error.
type SessionErrorCode string

const (
	// Login errors (01XXXX)
	ErrCodeInvalidCredentials SessionErrorCode = "SES-010001"
	ErrCodeMissingFields      SessionErrorCode = "SES-010002"
	ErrCodeRateLimited        SessionErrorCode = "SES-010003"
	ErrCodeLoginUnavailable   SessionErrorCode = "SES-010004"

	// Token errors (02XXXX)
	ErrCodeInvalidToken    SessionErrorCode = "SES-020001"
	ErrCodeExpiredToken    SessionErrorCode = "SES-020002"
	ErrCodeMissingToken    SessionErrorCode = "SES-020003"
	ErrCodeSessionNotFound SessionErrorCode = "SES-020004"

	// Internal errors (99XXXX)
	ErrCodeSessionInternalError SessionErrorCode = "SES-990001"
)

// SessionError represents a session error with code and message.
type SessionError struct {
	Code    SessionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError with the given code and message.
func NewSessionError(code SessionErrorCode, message string, err error) *SessionError {
	return &SessionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
