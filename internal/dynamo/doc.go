// Package dynamo provides the core primitives for the remediation simulator.
//
// The package defines the types shared by the model, the integrators and
// the presentation layers:
//
//   - [State]: the (A, N) pair of biomass and contaminant concentration
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Trajectory]: the recorded time, biomass and contaminant series
//   - [Span]: the simulated time interval
//
// # Example
//
//	dyn := models.NewRemediation(models.DefaultParams())
//	traj, err := integrators.Integrate(dyn, dynamo.State{A: 100, N: 5000},
//	    dynamo.Span{Start: 0, End: 150}, 0.1)
//
// # Ownership
//
// A Trajectory belongs to the run that produced it. Nothing in this module
// caches or shares trajectories between runs.
package dynamo
