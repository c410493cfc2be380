package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/phytosim/internal/dynamo"
)

func TestPeakBiomass(t *testing.T) {
	m := NewPeakBiomass()

	m.Observe(dynamo.State{A: -5}, 0)
	if m.Value() != -5 {
		t.Errorf("expected first sample to seed the peak, got %v", m.Value())
	}

	m.Observe(dynamo.State{A: 10}, 1)
	m.Observe(dynamo.State{A: math.NaN()}, 2)
	m.Observe(dynamo.State{A: 7}, 3)
	if m.Value() != 10 {
		t.Errorf("expected peak 10, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestRemovalFraction(t *testing.T) {
	m := NewRemovalFraction()
	if m.Value() != 0 {
		t.Error("expected zero before observations")
	}

	m.Observe(dynamo.State{N: 200}, 0)
	m.Observe(dynamo.State{N: 120}, 1)
	m.Observe(dynamo.State{N: 50}, 2)

	if math.Abs(m.Value()-0.75) > 1e-12 {
		t.Errorf("expected 0.75, got %v", m.Value())
	}

	m.Reset()
	m.Observe(dynamo.State{N: 10}, 0)
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset and a single sample, got %v", m.Value())
	}
}

func TestNegativeExcursions(t *testing.T) {
	m := NewNegativeExcursions()

	m.Observe(dynamo.State{A: 1, N: 1}, 0)
	m.Observe(dynamo.State{A: -1, N: 1}, 1)
	m.Observe(dynamo.State{A: 1, N: -1}, 2)
	m.Observe(dynamo.State{A: -1, N: -1}, 3)

	if m.Value() != 3 {
		t.Errorf("expected 3 excursions, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestDefault(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Default() {
		names[m.Name()] = true
	}
	for _, want := range []string{"peak_biomass", "removal_fraction", "negative_excursions"} {
		if !names[want] {
			t.Errorf("missing default metric %s", want)
		}
	}
}
