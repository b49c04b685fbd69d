package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("account with this email already exists")
)

const MsgRequiredFields = "All required fields must be provided"

// ValidationError reports a caller-correctable problem with a submission.
// Nothing is constructed or persisted when one is returned.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, "; ")
}

// MissingFields builds the ValidationError returned when required fields are absent.
func MissingFields(fields ...string) *ValidationError {
	return &ValidationError{Message: MsgRequiredFields, Fields: fields}
}

// StorageError wraps a persistence failure. It is never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
