package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a stored artifact does not exist.
	ErrNotFound = errors.New("not found")

	// ErrParse is returned when content is not valid JSON (or CSV).
	ErrParse = errors.New("parse error")

	// ErrMissingKey is wrapped by MissingKeyError.
	ErrMissingKey = errors.New("missing key")

	// ErrShape is returned when a key is present but holds the wrong type.
	ErrShape = errors.New("unexpected document shape")

	// ErrLengthMismatch is returned when the hourly arrays are not index-aligned.
	ErrLengthMismatch = errors.New("hourly arrays differ in length")
)

// MissingKeyError reports which key was absent from the raw document.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing key in data: %q", e.Key)
}

func (e *MissingKeyError) Unwrap() error {
	return ErrMissingKey
}

// StatusError reports a non-200 response from the upstream API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}
