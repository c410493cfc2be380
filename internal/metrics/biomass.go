package metrics

import (
	"math"

	"github.com/san-kum/phytosim/internal/dynamo"
)

type PeakBiomass struct {
	name string
	peak float64
	seen bool
}

func NewPeakBiomass() *PeakBiomass {
	return &PeakBiomass{name: "peak_biomass"}
}

func (p *PeakBiomass) Name() string { return p.name }

func (p *PeakBiomass) Observe(x dynamo.State, t float64) {
	if math.IsNaN(x.A) {
		return
	}
	if !p.seen || x.A > p.peak {
		p.peak = x.A
		p.seen = true
	}
}

func (p *PeakBiomass) Value() float64 {
	return p.peak
}

func (p *PeakBiomass) Reset() {
	p.peak = 0
	p.seen = false
}
