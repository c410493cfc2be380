package integrators

import "github.com/san-kum/phytosim/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta scheme with a fixed step.
// There is no error control: a step too large for the dynamics diverges
// silently.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	half := 0.5 * dt

	k1 := dyn.Derive(x, t)
	k2 := dyn.Derive(dynamo.State{A: x.A + half*k1.A, N: x.N + half*k1.N}, t+half)
	k3 := dyn.Derive(dynamo.State{A: x.A + half*k2.A, N: x.N + half*k2.N}, t+half)
	k4 := dyn.Derive(dynamo.State{A: x.A + dt*k3.A, N: x.N + dt*k3.N}, t+dt)

	dt6 := dt / 6
	return dynamo.State{
		A: x.A + dt6*(k1.A+2*k2.A+2*k3.A+k4.A),
		N: x.N + dt6*(k1.N+2*k2.N+2*k3.N+k4.N),
	}
}
