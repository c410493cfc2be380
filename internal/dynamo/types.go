package dynamo

import "math"

// State is the (A, N) pair: biomass and contaminant concentration.
// Values are not clamped; negative excursions are left as computed.
type State struct {
	A float64 `json:"a" yaml:"a"`
	N float64 `json:"n" yaml:"n"`
}

func (s State) IsValid() bool {
	return Finite(s.A) && Finite(s.N)
}

func (s State) Add(other State) State {
	return State{A: s.A + other.A, N: s.N + other.N}
}

func (s State) Scale(factor float64) State {
	return State{A: s.A * factor, N: s.N * factor}
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// Span is the simulated interval. Both ends are inclusive.
type Span struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

func (s Span) Duration() float64 {
	return s.End - s.Start
}

func (s Span) IsValid() bool {
	return Finite(s.Start) && Finite(s.End) && s.End >= s.Start
}

// Trajectory holds the three sample series of one run. The series always
// have the same length.
type Trajectory struct {
	Times       []float64 `json:"t"`
	Biomass     []float64 `json:"a"`
	Contaminant []float64 `json:"n"`
}

func NewTrajectory(capacity int) *Trajectory {
	if capacity < 0 {
		capacity = 0
	}
	return &Trajectory{
		Times:       make([]float64, 0, capacity),
		Biomass:     make([]float64, 0, capacity),
		Contaminant: make([]float64, 0, capacity),
	}
}

func (tr *Trajectory) Record(t float64, x State) {
	tr.Times = append(tr.Times, t)
	tr.Biomass = append(tr.Biomass, x.A)
	tr.Contaminant = append(tr.Contaminant, x.N)
}

func (tr *Trajectory) Len() int {
	return len(tr.Times)
}

func (tr *Trajectory) At(i int) (float64, State) {
	return tr.Times[i], State{A: tr.Biomass[i], N: tr.Contaminant[i]}
}

// Final returns the last recorded sample. ok is false for an empty trajectory.
func (tr *Trajectory) Final() (t float64, x State, ok bool) {
	n := tr.Len()
	if n == 0 {
		return 0, State{}, false
	}
	t, x = tr.At(n - 1)
	return t, x, true
}

// Phase returns the (A, N) pairs in sample order.
func (tr *Trajectory) Phase() []State {
	points := make([]State, tr.Len())
	for i := range points {
		_, points[i] = tr.At(i)
	}
	return points
}

// FirstNonFinite returns the index of the first sample with a NaN or Inf
// component, or -1 when every sample is finite.
func (tr *Trajectory) FirstNonFinite() int {
	for i := 0; i < tr.Len(); i++ {
		if _, x := tr.At(i); !x.IsValid() {
			return i
		}
	}
	return -1
}

// Finite reports whether v is neither NaN nor an infinity.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
