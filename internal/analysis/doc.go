// Package analysis derives results from a recorded trajectory.
//
//   - [Analyze]: first time the contaminant reaches the safety threshold
//   - [FirstAtOrBelow]: the underlying first-occurrence scan
//   - [Summarize]: peak, final and removal figures for display
//   - [PhasePortraitToASCII]: biomass against contaminant in the terminal
//
// # Threshold search
//
// The scan is strictly in sample order and the earliest match wins:
//
//	out := analysis.Analyze(traj, 75.0, 150)
//	if out.Reached {
//	    fmt.Printf("safe after %.2f years\n", out.TimeToSafe)
//	}
package analysis
