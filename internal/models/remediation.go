package models

import (
	"fmt"
	"math"

	"github.com/san-kum/phytosim/internal/dynamo"
)

// Params are the fixed coefficients of one remediation run.
type Params struct {
	R     float64 `yaml:"r" json:"r"`         // intrinsic growth rate
	K     float64 `yaml:"k" json:"k"`         // carrying capacity
	C     float64 `yaml:"c" json:"c"`         // maximum toxicity suppression
	BTox  float64 `yaml:"b_tox" json:"b_tox"` // half-saturation of toxicity
	U     float64 `yaml:"u" json:"u"`         // uptake coefficient
	Delta float64 `yaml:"delta" json:"delta"` // source term per unit biomass
	L     float64 `yaml:"l" json:"l"`         // leaching rate
}

func DefaultParams() Params {
	return Params{
		R:     2.0,
		K:     8000,
		C:     0.8,
		BTox:  7500,
		U:     1.0 / 50000,
		Delta: 0,
		L:     0.03,
	}
}

// Validate rejects coefficients that cannot describe a run. Derive itself
// never checks its inputs.
func (p Params) Validate() error {
	for name, v := range p.Map() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", dynamo.ErrParameterBounds, name)
		}
	}
	if p.K == 0 {
		return fmt.Errorf("%w: k must be non-zero", dynamo.ErrParameterBounds)
	}
	if p.BTox <= 0 {
		return fmt.Errorf("%w: b_tox must be positive, got %g", dynamo.ErrParameterBounds, p.BTox)
	}
	return nil
}

func (p Params) Map() map[string]float64 {
	return map[string]float64{
		"r": p.R, "k": p.K, "c": p.C, "b_tox": p.BTox,
		"u": p.U, "delta": p.Delta, "l": p.L,
	}
}

// Remediation couples logistic plant growth, inhibited by a saturating
// toxicity term, with contaminant uptake, replenishment and leaching.
type Remediation struct{ p Params }

func NewRemediation(p Params) *Remediation { return &Remediation{p: p} }
func (m *Remediation) StateDim() int       { return 2 }

// Derive returns (dA/dt, dN/dt). b_tox + N must be non-zero; N >= 0 and
// b_tox > 0 are assumed and not checked.
func (m *Remediation) Derive(x dynamo.State, _ float64) dynamo.State {
	p := m.p
	a, n := x.A, x.N
	dA := p.R*a*(1-a/p.K) - (p.C*n*a)/(p.BTox+n)
	dN := -p.U*a*n + p.Delta*a - p.L*n
	return dynamo.State{A: dA, N: dN}
}

func (m *Remediation) GetParams() map[string]float64 {
	return m.p.Map()
}
