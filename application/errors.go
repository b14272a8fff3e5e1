package application

import (
	"errors"
	"fmt"
	"strings"
)

// Planner errors.
var (
	// ErrNoInterpretations indicates Plan was called without any interpretation.
	ErrNoInterpretations = errors.New("no interpretations to plan for")

	// ErrUnreachable indicates the search exhausted every reachable state.
	ErrUnreachable = errors.New("goal is unreachable")

	// ErrBudgetExceeded indicates the search ran out of expansions.
	ErrBudgetExceeded = errors.New("search budget exceeded")

	// ErrInvalidGoal indicates an interpretation whose goal cannot be compiled
	// or refers to objects the world does not contain.
	ErrInvalidGoal = errors.New("invalid goal")
)

// AttemptError is the failure of one interpretation.
type AttemptError struct {
	Interpretation string
	Visited        int
	Err            error
}

// Error implements the error interface.
func (e *AttemptError) Error() string {
	return fmt.Sprintf("interpretation %s: %v", e.Interpretation, e.Err)
}

// Unwrap returns the underlying cause.
func (e *AttemptError) Unwrap() error {
	return e.Err
}

// AggregateError collects the failures of every attempted interpretation
// when none of them produced a plan.
type AggregateError struct {
	Errors []error
}

// Error joins the attempt messages with "; ".
func (e *AggregateError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes every attempt error to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}
