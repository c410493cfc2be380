package metrics

import "github.com/san-kum/phytosim/internal/dynamo"

// NegativeExcursions counts samples where either component went below zero.
// The model does not clamp, so a nonzero count usually means the step is too
// large for the dynamics.
type NegativeExcursions struct {
	name       string
	violations int
}

func NewNegativeExcursions() *NegativeExcursions {
	return &NegativeExcursions{name: "negative_excursions"}
}

func (n *NegativeExcursions) Name() string { return n.name }

func (n *NegativeExcursions) Observe(x dynamo.State, t float64) {
	if x.A < 0 || x.N < 0 {
		n.violations++
	}
}

func (n *NegativeExcursions) Value() float64 {
	return float64(n.violations)
}

func (n *NegativeExcursions) Reset() {
	n.violations = 0
}

// Default returns a fresh set of the metrics recorded for every run.
func Default() []dynamo.Metric {
	return []dynamo.Metric{
		NewPeakBiomass(),
		NewRemovalFraction(),
		NewNegativeExcursions(),
	}
}
