package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports caller input that violates an invariant (bad
// quarter label, negative amount, over-exit, over-draw). Never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a missing Pool/Investor/Investment/Declaration/Payment.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// StorageError wraps a failed data-access call. Callers decide on retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// StateConflictError reports a concurrent mutation detected during commit
// (optimistic version check failed, or the distributed lock was held).
// Callers should re-read and retry the whole operation.
type StateConflictError struct {
	Entity string
	ID     string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("concurrent modification of %s %s", e.Entity, e.ID)
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func Validationf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func Conflict(entity, id string) error {
	return &StateConflictError{Entity: entity, ID: id}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func IsConflict(err error) bool {
	var ce *StateConflictError
	return errors.As(err, &ce)
}
