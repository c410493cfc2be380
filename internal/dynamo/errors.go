package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates an initial condition that is NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidStep indicates a non-positive or non-finite step size.
	ErrInvalidStep = errors.New("dynamo: step size must be positive and finite")

	// ErrInvalidSpan indicates a non-finite or reversed time span.
	ErrInvalidSpan = errors.New("dynamo: invalid time span")

	// ErrStepTooSmall indicates the step no longer advances the clock.
	ErrStepTooSmall = errors.New("dynamo: timestep too small to advance time")

	// ErrTooManySamples indicates the run would exceed the sample budget.
	ErrTooManySamples = errors.New("dynamo: run exceeds maximum sample count")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDiverged indicates a trajectory holding NaN or Inf samples.
	ErrDiverged = errors.New("dynamo: trajectory left the finite range")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
