package usecase

import (
	"errors"

	"rankings-admin/pkg/validation"
)

var (
	ErrRankingNotFound = errors.New("ranking not found")
	ErrItemNotFound    = errors.New("ranking item not found")
	// ErrImageStorageUnavailable is returned by SetCoverImage when no object store is wired.
	ErrImageStorageUnavailable = errors.New("image storage is not configured")
)

// ValidationError carries one human-readable message per offending field.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

func newValidationError(fields validation.FieldErrors) error {
	if fields.Empty() {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func fieldError(field, message string) error {
	return &ValidationError{Fields: validation.FieldErrors{field: message}}
}
