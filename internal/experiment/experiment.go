// Package experiment assembles a simulator from configuration and runs it.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/phytosim/internal/config"
	"github.com/san-kum/phytosim/internal/dynamo"
	"github.com/san-kum/phytosim/internal/sim"
)

const DefaultModel = "remediation"

type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
}

// New builds the model, integrator and default metrics named by cfg. Each
// Experiment owns its simulator; none of its state is shared.
func New(reg *Registry, cfg *config.Config) (*Experiment, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	dyn, err := reg.GetModel(DefaultModel, cfg.Params)
	if err != nil {
		return nil, err
	}
	integrator, err := reg.GetIntegrator(cfg.Run.Integrator)
	if err != nil {
		return nil, err
	}

	s := sim.New(dyn, integrator)
	for _, m := range reg.DefaultMetrics() {
		s.AddMetric(m)
	}
	return &Experiment{cfg: cfg, simulator: s}, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.InitState(), e.cfg.SimConfig())
}

// GetSimulator returns the underlying simulator for adding observers.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// Run is shorthand for building an experiment with a fresh registry and
// running it once.
func Run(ctx context.Context, cfg *config.Config, observers ...dynamo.Observer) (*sim.Result, error) {
	e, err := New(NewRegistry(), cfg)
	if err != nil {
		return nil, err
	}
	for _, o := range observers {
		e.GetSimulator().AddObserver(o)
	}
	return e.Run(ctx)
}
