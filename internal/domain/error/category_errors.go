package error

import (
	"errors"
	"fmt"
)

// ErrCategoryNotFound is returned when a category is not in the session catalog.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryErrorCode defines error codes for catalog lookups.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const ErrCodeCategoryNotFound CategoryErrorCode = "CAT-010001"

// CategoryError is a failed catalog lookup for one category id.
type CategoryError struct {
	Code       CategoryErrorCode
	CategoryID string
	Err        error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("category %q: %v", e.CategoryID, e.Err)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryNotFound reports that id is unknown even after a catalog refresh.
func NewCategoryNotFound(id string) *CategoryError {
	return &CategoryError{
		Code:       ErrCodeCategoryNotFound,
		CategoryID: id,
		Err:        ErrCategoryNotFound,
	}
}
