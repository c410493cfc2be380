package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/phytosim/internal/dynamo"
	"github.com/san-kum/phytosim/internal/integrators"
	"github.com/san-kum/phytosim/internal/metrics"
	"github.com/san-kum/phytosim/internal/models"
)

type testDynamics struct{}

func (t *testDynamics) Derive(x dynamo.State, time float64) dynamo.State {
	return dynamo.State{A: -x.A, N: -x.N}
}

func (t *testDynamics) StateDim() int { return 2 }

type testIntegrator struct{}

func (t *testIntegrator) Step(dyn dynamo.System, x dynamo.State, time float64, dt float64) dynamo.State {
	return x.Add(dyn.Derive(x, time).Scale(dt))
}

type testObserver struct{ steps int }

func (o *testObserver) OnStep(x dynamo.State, t float64) { o.steps++ }

func newRemediationSim() *Simulator {
	s := New(models.NewRemediation(models.DefaultParams()), integrators.NewRK4())
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	return s
}

func TestSimulatorRun(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	cfg := DefaultConfig()
	cfg.Span = dynamo.Span{Start: 0, End: 1}
	cfg.Dt = 0.125
	cfg.Threshold = 0.5

	result, err := sim.Run(context.Background(), dynamo.State{A: 1, N: 1}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Trajectory.Len() != 9 {
		t.Errorf("expected 9 samples, got %d", result.Trajectory.Len())
	}
	if result.StepsTaken != 8 {
		t.Errorf("expected 8 steps, got %d", result.StepsTaken)
	}

	_, final, _ := result.Trajectory.Final()
	expected := math.Exp(-1.0)
	if math.Abs(final.N-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, final.N)
	}

	// (7/8)^k first drops to 0.5 or below at k = 6
	if !result.Outcome.Reached || result.Outcome.TimeToSafe != 0.75 {
		t.Errorf("unexpected outcome %+v", result.Outcome)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero dt", Config{Span: dynamo.Span{0, 1}, Dt: 0}, dynamo.ErrInvalidStep},
		{"negative dt", Config{Span: dynamo.Span{0, 1}, Dt: -0.1}, dynamo.ErrInvalidStep},
		{"reversed span", Config{Span: dynamo.Span{1, 0}, Dt: 0.1}, dynamo.ErrInvalidSpan},
		{"too many samples", Config{Span: dynamo.Span{0, 1000}, Dt: 0.1, MaxSamples: 100}, dynamo.ErrTooManySamples},
		{"nan threshold", Config{Span: dynamo.Span{0, 1}, Dt: 0.1, Threshold: math.NaN()}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), dynamo.State{A: 1}, tt.cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSimulatorValidateState(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})
	x0 := dynamo.State{A: math.NaN(), N: 1}

	cfg := DefaultConfig()
	cfg.Span = dynamo.Span{Start: 0, End: 1}

	if _, err := sim.Run(context.Background(), x0, cfg); !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}

	cfg.ValidateState = false
	result, err := sim.Run(context.Background(), x0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, final, _ := result.Trajectory.Final(); !math.IsNaN(final.A) {
		t.Errorf("expected NaN to propagate, got %v", final.A)
	}
}

func TestSimulatorMetricsAndObservers(t *testing.T) {
	sim := newRemediationSim()
	obs := &testObserver{}
	sim.AddObserver(obs)

	cfg := DefaultConfig()
	cfg.Span = dynamo.Span{Start: 0, End: 5}

	result, err := sim.Run(context.Background(), dynamo.State{A: 100, N: 5000}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range []string{"peak_biomass", "removal_fraction", "negative_excursions"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("metric %s not found in result", name)
		}
	}
	if obs.steps != result.Trajectory.Len() {
		t.Errorf("observer saw %d samples, trajectory has %d", obs.steps, result.Trajectory.Len())
	}
	if result.Metrics["peak_biomass"] != result.Summary.PeakBiomass {
		t.Errorf("metric and summary disagree: %v vs %v", result.Metrics["peak_biomass"], result.Summary.PeakBiomass)
	}

	// metrics reset between runs
	again, err := sim.Run(context.Background(), dynamo.State{A: 10, N: 100}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if again.Metrics["peak_biomass"] != again.Summary.PeakBiomass {
		t.Errorf("metric state leaked between runs")
	}
}

func TestSimulatorContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRemediationSim().Run(ctx, dynamo.State{A: 100, N: 5000}, DefaultConfig())
	if !errors.Is(err, dynamo.ErrContextCanceled) {
		t.Errorf("expected ErrContextCanceled, got %v", err)
	}
}

func TestDefaultScenario(t *testing.T) {
	result, err := newRemediationSim().Run(context.Background(), dynamo.State{A: 100, N: 5000}, DefaultConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// reference values from an independent RK4 run with the same clock
	const (
		wantSamples    = 1501
		wantLastTime   = 149.99999999999577
		wantTimeToSafe = 25.200000000000088
		wantSafeIndex  = 252
	)

	traj := result.Trajectory
	if traj.Len() != wantSamples {
		t.Errorf("expected %d samples, got %d", wantSamples, traj.Len())
	}
	if last := traj.Times[traj.Len()-1]; last != wantLastTime {
		t.Errorf("last sample at %v, want %v", last, wantLastTime)
	}

	out := result.Outcome
	if !out.Reached {
		t.Fatalf("expected threshold to be reached, got %+v", out)
	}
	if out.TimeToSafe != wantTimeToSafe {
		t.Errorf("time to safe %v, want %v", out.TimeToSafe, wantTimeToSafe)
	}
	if traj.Times[wantSafeIndex] != wantTimeToSafe {
		t.Errorf("sample %d at %v, want %v", wantSafeIndex, traj.Times[wantSafeIndex], wantTimeToSafe)
	}
	if out.Threshold != DefaultThreshold || out.Horizon != DefaultEnd {
		t.Errorf("outcome does not carry run constants: %+v", out)
	}

	for i := 1; i < traj.Len(); i++ {
		if traj.Contaminant[i] > traj.Contaminant[i-1] {
			t.Fatalf("contaminant increased at sample %d", i)
		}
		if !(traj.Biomass[i] > 0) {
			t.Fatalf("biomass left the positive range at sample %d", i)
		}
	}

	idx := int(math.Round(out.TimeToSafe / DefaultDt))
	if traj.Contaminant[idx] > DefaultThreshold || traj.Contaminant[idx-1] <= DefaultThreshold {
		t.Errorf("time to safe is not the first crossing")
	}

	if result.Metrics["negative_excursions"] != 0 {
		t.Errorf("unexpected negative excursions: %v", result.Metrics["negative_excursions"])
	}
	if f := result.Metrics["removal_fraction"]; f < 0.98 || f > 1 {
		t.Errorf("removal fraction %v out of range", f)
	}
}

func TestDefaultScenario_Deterministic(t *testing.T) {
	a, err := newRemediationSim().Run(context.Background(), dynamo.State{A: 100, N: 5000}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := newRemediationSim().Run(context.Background(), dynamo.State{A: 100, N: 5000}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if a.Outcome != b.Outcome {
		t.Errorf("outcomes differ: %+v vs %+v", a.Outcome, b.Outcome)
	}
	for i := range a.Trajectory.Contaminant {
		if math.Float64bits(a.Trajectory.Contaminant[i]) != math.Float64bits(b.Trajectory.Contaminant[i]) {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestBareSoil_LeachingOnly(t *testing.T) {
	result, err := newRemediationSim().Run(context.Background(), dynamo.State{A: 0, N: 5000}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range result.Trajectory.Biomass {
		if a != 0 {
			t.Fatalf("biomass appeared without seed: %v", a)
		}
	}
	// leaching alone: 5000·exp(-0.03 t) reaches 75 near t = 140
	if !result.Outcome.Reached || math.Abs(result.Outcome.TimeToSafe-140) > 1 {
		t.Errorf("unexpected outcome %+v", result.Outcome)
	}
}
