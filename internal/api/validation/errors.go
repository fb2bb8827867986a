package validation

import (
	"errors"
	"strings"
)

// Violation is a single failed field constraint
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ConstraintError aggregates every field constraint violation found in one payload
type ConstraintError struct {
	Violations []Violation
}

func (e *ConstraintError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the violation messages in declaration order
func (e *ConstraintError) Messages() []string {
	messages := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		messages[i] = v.Message
	}
	return messages
}

// ShapeError is returned by pipes when the payload as a whole has the wrong shape
type ShapeError struct {
	Message string
}

func (e *ShapeError) Error() string {
	return e.Message
}

// NewShapeError creates a new payload shape error
func NewShapeError(message string) error {
	return &ShapeError{Message: message}
}

// IsValidationError reports whether err is a constraint or shape violation
func IsValidationError(err error) bool {
	var constraintErr *ConstraintError
	var shapeErr *ShapeError
	return errors.As(err, &constraintErr) || errors.As(err, &shapeErr)
}
