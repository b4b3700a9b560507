package attendance

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals the target record does not exist.
	ErrNotFound = errors.New("attendance record not found")

	// ErrMissingIndex signals the store cannot serve the compound
	// student+date range query because the index has not been provisioned.
	// It is the only store fault the reconciler recovers from.
	ErrMissingIndex = errors.New("attendance index not provisioned")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StoreError wraps a store fault so callers can tell it apart from
// validation and not-found outcomes without inspecting message text.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("attendance store: %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }
