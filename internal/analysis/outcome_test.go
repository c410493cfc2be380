package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/phytosim/internal/dynamo"
)

func TestFirstAtOrBelow(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}

	tests := []struct {
		name      string
		values    []float64
		threshold float64
		wantTime  float64
		wantOK    bool
	}{
		{"never reached", []float64{100, 90, 80, 76, 75.5}, 75, NotReached, false},
		{"exact equality counts", []float64{100, 90, 75, 70, 60}, 75, 2, true},
		{"first match wins", []float64{100, 50, 100, 40, 30}, 75, 1, true},
		{"initial sample", []float64{10, 20, 30, 40, 50}, 75, 0, true},
		{"last sample", []float64{100, 100, 100, 100, 74}, 75, 4, true},
		{"nan never matches", []float64{math.NaN(), math.NaN(), 60, 0, 0}, 75, 2, true},
		{"empty", nil, 75, NotReached, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstAtOrBelow(tt.values, times, tt.threshold)
			if got != tt.wantTime || ok != tt.wantOK {
				t.Errorf("FirstAtOrBelow() = (%v, %v), want (%v, %v)", got, ok, tt.wantTime, tt.wantOK)
			}
		})
	}
}

func TestFirstAtOrBelow_MismatchedLengths(t *testing.T) {
	got, ok := FirstAtOrBelow([]float64{100, 100, 1}, []float64{0, 1}, 75)
	if ok || got != NotReached {
		t.Errorf("expected scan to stop at the shorter series, got (%v, %v)", got, ok)
	}
}

func TestAnalyze(t *testing.T) {
	traj := dynamo.NewTrajectory(3)
	traj.Record(0, dynamo.State{A: 1, N: 200})
	traj.Record(0.1, dynamo.State{A: 2, N: 80})
	traj.Record(0.2, dynamo.State{A: 3, N: 70})

	out := Analyze(traj, 75, 150)
	if !out.Reached || out.TimeToSafe != 0.2 {
		t.Errorf("Analyze() = %+v", out)
	}
	if out.Threshold != 75 || out.Horizon != 150 {
		t.Errorf("threshold/horizon not carried: %+v", out)
	}

	out = Analyze(traj, 10, 150)
	if out.Reached || out.TimeToSafe != NotReached {
		t.Errorf("expected not reached, got %+v", out)
	}

	out = Analyze(nil, 75, 150)
	if out.Reached {
		t.Error("nil trajectory reported as reached")
	}
}

func TestSummarize(t *testing.T) {
	traj := dynamo.NewTrajectory(4)
	traj.Record(0, dynamo.State{A: 100, N: 5000})
	traj.Record(1, dynamo.State{A: 900, N: 3000})
	traj.Record(2, dynamo.State{A: 700, N: 1000})
	traj.Record(3, dynamo.State{A: 650, N: 1250})

	s := Summarize(traj)
	if s.Samples != 4 {
		t.Errorf("Samples = %d", s.Samples)
	}
	if s.PeakBiomass != 900 || s.PeakBiomassTime != 1 {
		t.Errorf("peak = %v at %v", s.PeakBiomass, s.PeakBiomassTime)
	}
	if s.MinContaminant != 1000 || s.FinalContaminant != 1250 {
		t.Errorf("contaminant min/final = %v/%v", s.MinContaminant, s.FinalContaminant)
	}
	if math.Abs(s.RemovalFraction-0.75) > 1e-12 {
		t.Errorf("RemovalFraction = %v, want 0.75", s.RemovalFraction)
	}

	if (Summarize(dynamo.NewTrajectory(0)) != Summary{}) {
		t.Error("empty trajectory should summarize to zero value")
	}
}

func TestRemovalFraction_CleanSoil(t *testing.T) {
	if f := RemovalFraction(0, 0); f != 0 {
		t.Errorf("RemovalFraction(0, 0) = %v", f)
	}
}

func TestPhasePortraitToASCII(t *testing.T) {
	traj := dynamo.NewTrajectory(30)
	for i := 0; i < 30; i++ {
		traj.Record(float64(i), dynamo.State{A: float64(i * 10), N: 5000 - float64(i*100)})
	}

	out := PhasePortraitToASCII(traj, 40, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	for _, glyph := range []string{".", "o", "●"} {
		if !strings.Contains(out, glyph) {
			t.Errorf("missing glyph %q", glyph)
		}
	}

	if PhasePortraitToASCII(dynamo.NewTrajectory(0), 40, 10) != "" {
		t.Error("empty trajectory should render nothing")
	}
}

func TestPhaseBounds_SkipsNonFinite(t *testing.T) {
	b, ok := PhaseBounds([]dynamo.State{{A: math.NaN(), N: 1}, {A: 2, N: 3}, {A: 4, N: -1}})
	if !ok {
		t.Fatal("expected bounds")
	}
	if b.MinA != 2 || b.MaxA != 4 || b.MinN != -1 || b.MaxN != 3 {
		t.Errorf("bounds = %+v", b)
	}

	if _, ok := PhaseBounds([]dynamo.State{{A: math.Inf(1)}}); ok {
		t.Error("expected no bounds for non-finite points")
	}
}
