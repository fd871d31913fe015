package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateLink signals that an identical link is already stored. It is
// an expected business outcome, not a system fault.
var ErrDuplicateLink = errors.New("link already stored")

// ValidationError reports malformed input, detected before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps an unexpected failure from the persistence layer. The
// underlying error is kept for server-side logs and never leaks to clients.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
