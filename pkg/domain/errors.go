package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrQuizNotFound is returned when a quiz ID cannot be resolved by a loader.
var ErrQuizNotFound = errors.New("quiz not found")

// ErrNotDismissable is returned when closing a quiz that was configured as non-dismissable.
var ErrNotDismissable = errors.New("quiz is not dismissable")

// ConfigurationError reports an invalid quiz definition.
// It lists every problem found, not just the first one.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid quiz configuration: " + e.Problems[0]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid quiz configuration (%d problems):", len(e.Problems))
	for i, p := range e.Problems {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, p)
	}
	return b.String()
}

// InvalidTransitionError describes an operation that is not valid in the current state.
// These arise from double invocations by the UI and are treated as no-ops.
type InvalidTransitionError struct {
	Op     string
	Phase  Phase
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %q in phase %s: %s", e.Op, e.Phase, e.Reason)
}

// OutOfRangeError is returned when a choice index does not exist on the step.
type OutOfRangeError struct {
	StepIndex   int
	ChoiceIndex int
	Count       int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("choice %d out of range for step %d (%d choices)", e.ChoiceIndex, e.StepIndex, e.Count)
}
