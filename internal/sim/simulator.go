package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/phytosim/internal/analysis"
	"github.com/san-kum/phytosim/internal/dynamo"
	"github.com/san-kum/phytosim/internal/integrators"
)

// Simulator runs one model with one integrator. A Simulator holds metric
// state between Reset and Value, so it must not be shared by concurrent runs.
type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.ValidateState && !x0.IsValid() {
		return nil, fmt.Errorf("%w: initial condition (%g, %g)", dynamo.ErrInvalidState, x0.A, x0.N)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	observers := make([]dynamo.Observer, 0, len(s.observers)+len(s.metrics))
	observers = append(observers, s.observers...)
	for _, m := range s.metrics {
		observers = append(observers, metricObserver{m})
	}

	traj, err := integrators.Solve(ctx, s.integrator, s.dyn, x0, cfg.Span, cfg.Dt, observers...)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Trajectory: traj,
		Outcome:    analysis.Analyze(traj, cfg.Threshold, cfg.Span.End),
		Summary:    analysis.Summarize(traj),
		Metrics:    make(map[string]float64, len(s.metrics)),
		StepsTaken: traj.Len() - 1,
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if err := integrators.ValidateStep(cfg.Span, cfg.Dt); err != nil {
		return err
	}
	if math.IsNaN(cfg.Threshold) || math.IsInf(cfg.Threshold, 0) {
		return fmt.Errorf("threshold must be finite, got %f", cfg.Threshold)
	}
	if cfg.MaxSamples > 0 && integrators.EstimateSamples(cfg.Span, cfg.Dt) > cfg.MaxSamples {
		return fmt.Errorf("%w: span %g with dt %g needs more than %d samples",
			dynamo.ErrTooManySamples, cfg.Span.Duration(), cfg.Dt, cfg.MaxSamples)
	}
	return nil
}

type metricObserver struct{ m dynamo.Metric }

func (o metricObserver) OnStep(x dynamo.State, t float64) { o.m.Observe(x, t) }
