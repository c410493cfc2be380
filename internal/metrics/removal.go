package metrics

import (
	"github.com/san-kum/phytosim/internal/analysis"
	"github.com/san-kum/phytosim/internal/dynamo"
)

// RemovalFraction tracks how much of the first observed contaminant level
// is gone by the last observation.
type RemovalFraction struct {
	name    string
	initial float64
	last    float64
	samples int
}

func NewRemovalFraction() *RemovalFraction {
	return &RemovalFraction{name: "removal_fraction"}
}

func (r *RemovalFraction) Name() string { return r.name }

func (r *RemovalFraction) Observe(x dynamo.State, t float64) {
	if r.samples == 0 {
		r.initial = x.N
	}
	r.last = x.N
	r.samples++
}

func (r *RemovalFraction) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return analysis.RemovalFraction(r.initial, r.last)
}

func (r *RemovalFraction) Reset() {
	r.initial, r.last = 0, 0
	r.samples = 0
}
