package service

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("record not found")

	ErrNothingToExport    = errors.New("no items to export")
	ErrSharingUnavailable = errors.New("export sharing is not configured")
)

// ValidationError reports which input field was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
