// internal/domain/errors.go
package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when an audit id is unknown.
	// Callers can check for it using errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when a submission, filter or configuration value is not valid.
	ErrNotValid = errors.New("not valid")
)
