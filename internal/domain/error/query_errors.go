package error

import "errors"

// View query errors.
var (
	// ErrInvalidPageSize is returned when a page size is not one of the allowed sizes.
	ErrInvalidPageSize = errors.New("page size must be one of 5, 10, 20, 50")

	// ErrInvalidOrdering is returned when an ordering is not a supported sort key.
	ErrInvalidOrdering = errors.New("unsupported ordering")

	// ErrInvalidFilterField is returned when a filter field name is unknown.
	ErrInvalidFilterField = errors.New("unknown filter field")

	// ErrInvalidFilterValue is returned when a filter value cannot be parsed.
	ErrInvalidFilterValue = errors.New("invalid filter value")

	// ErrInvalidDateFormat is returned when a date is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrUnknownView is returned when a view name is not registered.
	ErrUnknownView = errors.New("unknown view")

	// ErrUnknownRangePreset is returned when a date range preset is unknown.
	ErrUnknownRangePreset = errors.New("unknown date range preset")
)

// QueryErrorCode defines error codes for view query errors.
// Format: QRY-XXYYYY where XX is category and YYYY is specific error.
type QueryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPageSize    QueryErrorCode = "QRY-010001"
	ErrCodeInvalidOrdering    QueryErrorCode = "QRY-010002"
	ErrCodeInvalidFilterField QueryErrorCode = "QRY-010003"
	ErrCodeInvalidFilterValue QueryErrorCode = "QRY-010004"
	ErrCodeInvalidDateFormat  QueryErrorCode = "QRY-010005"
	ErrCodeUnknownRangePreset QueryErrorCode = "QRY-010006"
	ErrCodeInvalidPage        QueryErrorCode = "QRY-010007"

	// Lookup errors (02XXXX)
	ErrCodeUnknownView QueryErrorCode = "QRY-020001"
)

// QueryError represents a rejected view mutation with code and message.
type QueryError struct {
	Code    QueryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError creates a new QueryError with the given code and message.
func NewQueryError(code QueryErrorCode, message string, err error) *QueryError {
	return &QueryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
