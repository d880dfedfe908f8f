package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a body whose position or velocity is NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrNoBodies indicates an empty body set.
	ErrNoBodies = errors.New("dynamo: no bodies")

	// ErrPrimaryCount indicates a body set without exactly one primary.
	ErrPrimaryCount = errors.New("dynamo: exactly one primary body required")

	// ErrInvalidMass indicates a body with a non-positive or non-finite mass.
	ErrInvalidMass = errors.New("dynamo: mass must be positive and finite")

	// ErrInvalidConfig indicates a parameter value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

// SimulationError wraps an error with the tick at which it surfaced.
type SimulationError struct {
	Step    int
	Time    float64
	Body    string
	Wrapped error
}

func (e *SimulationError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("step %d (t=%.0fs) body %s: %v", e.Step, e.Time, e.Body, e.Wrapped)
	}
	return fmt.Sprintf("step %d (t=%.0fs): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
