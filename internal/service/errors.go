package service

import (
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/events-catalog/internal/repository"
)

// ErrValidation matches every *ValidationError with errors.Is.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when a single event lookup finds nothing.
var ErrNotFound = repository.ErrNotFound

// ValidationError reports caller input that violates a rule. It is never
// retried or corrected.
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

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
