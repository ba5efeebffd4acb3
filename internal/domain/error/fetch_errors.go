// Package error defines domain-specific errors for the finance tracker client.
package error

import "errors"

// Collection fetch errors.
var (
	// ErrCollectionUnavailable is returned when the collection service cannot be reached.
	ErrCollectionUnavailable = errors.New("collection service unavailable")

	// ErrCollectionRejected is returned when the collection service answers with an error status.
	ErrCollectionRejected = errors.New("collection service rejected the request")

	// ErrRemoteUnauthorized is returned when the remote token is missing, invalid or revoked.
	ErrRemoteUnauthorized = errors.New("remote session is not authorized")

	// ErrPageOutOfRange is returned when the requested page no longer exists.
	ErrPageOutOfRange = errors.New("requested page is out of range")

	// ErrEndpointNotFound is returned when an optional endpoint is not served.
	ErrEndpointNotFound = errors.New("endpoint not found")

	// ErrInvalidResponse is returned when a response body cannot be decoded.
	ErrInvalidResponse = errors.New("invalid response from collection service")
)

// FetchErrorCode defines error codes for fetch failures.
// Format: MOV-XXYYYY where XX is category and YYYY is specific error.
type FetchErrorCode string

const (
	// Transport errors (01XXXX)
	ErrCodeCollectionUnavailable FetchErrorCode = "MOV-010001"
	ErrCodeInvalidResponse       FetchErrorCode = "MOV-010002"

	// Remote status errors (02XXXX)
	ErrCodeCollectionRejected FetchErrorCode = "MOV-020001"
	ErrCodeRemoteUnauthorized FetchErrorCode = "MOV-020002"
	ErrCodePageOutOfRange     FetchErrorCode = "MOV-020003"
	ErrCodeEndpointNotFound   FetchErrorCode = "MOV-020004"

	// Internal errors (99XXXX)
	ErrCodeFetchInternalError FetchErrorCode = "MOV-990001"
)

// FetchError is a failed collection fetch carrying a user-displayable message.
type FetchError struct {
	Code    FetchErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError with the given code and message.
func NewFetchError(code FetchErrorCode, message string, err error) *FetchError {
	return &FetchError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsFetchError converts any error into a FetchError, keeping an existing one as is.
func AsFetchError(err error) *FetchError {
	if err == nil {
		return nil
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr
	}
	switch {
	case errors.Is(err, ErrRemoteUnauthorized):
		return NewFetchError(ErrCodeRemoteUnauthorized, "Your session has expired, please sign in again", err)
	case errors.Is(err, ErrPageOutOfRange):
		return NewFetchError(ErrCodePageOutOfRange, "That page is no longer available", err)
	case errors.Is(err, ErrEndpointNotFound):
		return NewFetchError(ErrCodeEndpointNotFound, "The requested data is not available", err)
	case errors.Is(err, ErrInvalidResponse):
		return NewFetchError(ErrCodeInvalidResponse, "The server sent an unexpected response", err)
	case errors.Is(err, ErrCollectionRejected):
		return NewFetchError(ErrCodeCollectionRejected, "The server could not process the request", err)
	case errors.Is(err, ErrCollectionUnavailable):
		return NewFetchError(ErrCodeCollectionUnavailable, "Could not reach the server, please try again", err)
	default:
		return NewFetchError(ErrCodeFetchInternalError, "Something went wrong while loading movements", err)
	}
}
