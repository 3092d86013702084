package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotInProgress is returned when an operation needs a running quiz.
	ErrNotInProgress = errors.New("quiz is not in progress")

	// ErrAlreadyAnswered is returned when the current question already has an answer.
	ErrAlreadyAnswered = errors.New("current question already answered")

	// ErrNotAnswered is returned by Advance before the current question is answered.
	ErrNotAnswered = errors.New("current question not answered yet")

	// ErrNotCompleted is returned when results are requested before the quiz ends.
	ErrNotCompleted = errors.New("quiz is not completed")
)

// ValidationError reports missing or invalid start input.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: missing %s", strings.Join(e.Fields, ", "))
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// MissingCollaboratorError reports an optional dependency that is not wired.
type MissingCollaboratorError struct {
	Name string
}

func (e *MissingCollaboratorError) Error() string {
	return fmt.Sprintf("%s is not available", e.Name)
}

// DataIntegrityError reports a malformed or empty question bank.
type DataIntegrityError struct {
	Reason string
	Err    error
}

func (e *DataIntegrityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data integrity: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("data integrity: %s", e.Reason)
}

func (e *DataIntegrityError) Unwrap() error { return e.Err }
