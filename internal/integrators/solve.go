package integrators

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/phytosim/internal/dynamo"
)

const preallocLimit = 1 << 20

// Integrate runs the classical RK4 scheme from x0 over span with step dt.
func Integrate(dyn dynamo.System, x0 dynamo.State, span dynamo.Span, dt float64) (*dynamo.Trajectory, error) {
	return Solve(context.Background(), NewRK4(), dyn, x0, span, dt)
}

// Solve advances x0 from span.Start while t <= span.End, recording each
// sample before the step that leaves it. The clock is accumulated with
// t += dt, so the last sample lands at or just below span.End depending on
// how dt divides the span.
//
// Non-finite values in x0 are not intercepted; they propagate through the
// arithmetic into the trajectory.
func Solve(ctx context.Context, integ dynamo.Integrator, dyn dynamo.System, x0 dynamo.State, span dynamo.Span, dt float64, observers ...dynamo.Observer) (*dynamo.Trajectory, error) {
	if err := ValidateStep(span, dt); err != nil {
		return nil, err
	}

	traj := dynamo.NewTrajectory(min(EstimateSamples(span, dt), preallocLimit))

	x := x0
	t := span.Start
	for step := 0; t <= span.End; step++ {
		select {
		case <-ctx.Done():
			return traj, fmt.Errorf("%w: %v", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		traj.Record(t, x)
		for _, obs := range observers {
			obs.OnStep(x, t)
		}

		x = integ.Step(dyn, x, t, dt)

		next := t + dt
		if next == t {
			return traj, &dynamo.SimulationError{Step: step, Time: t, State: x, Wrapped: dynamo.ErrStepTooSmall}
		}
		t = next
	}

	return traj, nil
}

// ValidateStep rejects configurations for which the sampling loop would
// not terminate.
func ValidateStep(span dynamo.Span, dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return fmt.Errorf("%w: got %g", dynamo.ErrInvalidStep, dt)
	}
	if !span.IsValid() {
		return fmt.Errorf("%w: [%g, %g]", dynamo.ErrInvalidSpan, span.Start, span.End)
	}
	return nil
}

// EstimateSamples is the expected number of recorded samples for span and dt.
func EstimateSamples(span dynamo.Span, dt float64) int {
	if dt <= 0 || !span.IsValid() {
		return 0
	}
	n := math.Floor(span.Duration()/dt) + 2
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}
