package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/phytosim/internal/config"
	"github.com/san-kum/phytosim/internal/dynamo"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{"rk4", "euler"} {
		if _, err := reg.GetIntegrator(name); err != nil {
			t.Errorf("GetIntegrator(%s): %v", name, err)
		}
	}
	if _, err := reg.GetIntegrator("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if _, err := reg.GetModel("pendulum", config.DefaultConfig().Params); err == nil {
		t.Error("expected error for unknown model")
	}
	if got := reg.ListIntegrators(); len(got) != 2 || got[0] != "euler" {
		t.Errorf("unexpected integrators %v", got)
	}
	if len(reg.DefaultMetrics()) == 0 {
		t.Error("expected default metrics")
	}
}

func TestRun_Baseline(t *testing.T) {
	res, err := Run(context.Background(), config.DefaultConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Outcome.Reached {
		t.Fatal("expected the baseline to reach the threshold")
	}
	if _, ok := res.Metrics["peak_biomass"]; !ok {
		t.Error("expected peak_biomass metric")
	}
}

type countObserver struct{ n int }

func (c *countObserver) OnStep(dynamo.State, float64) { c.n++ }

func TestRun_Observer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Run.End = 1
	obs := &countObserver{}
	res, err := Run(context.Background(), cfg, obs)
	if err != nil {
		t.Fatal(err)
	}
	if obs.n != res.Trajectory.Len() {
		t.Errorf("observer saw %d samples, trajectory has %d", obs.n, res.Trajectory.Len())
	}
}

func TestRun_Errors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Run.Integrator = "leapfrog"
	if _, err := Run(context.Background(), cfg); err == nil {
		t.Error("expected error for unknown integrator")
	}

	cfg = config.DefaultConfig()
	cfg.Params.BTox = -1
	if _, err := Run(context.Background(), cfg); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.Run.Dt = 0
	if _, err := Run(context.Background(), cfg); !errors.Is(err, dynamo.ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep, got %v", err)
	}
}
