package analysis

import "github.com/san-kum/phytosim/internal/dynamo"

// NotReached is the TimeToSafe value of an outcome whose threshold was not
// crossed within the horizon.
const NotReached = -1.0

// Outcome is the derived result of one run.
type Outcome struct {
	TimeToSafe float64 `json:"time_to_safe"`
	Reached    bool    `json:"reached"`
	Threshold  float64 `json:"threshold"`
	Horizon    float64 `json:"horizon"`
}

// FirstAtOrBelow scans values in index order and returns the time of the
// first value <= threshold. NaN values never match.
func FirstAtOrBelow(values, times []float64, threshold float64) (float64, bool) {
	n := min(len(values), len(times))
	for i := 0; i < n; i++ {
		if values[i] <= threshold {
			return times[i], true
		}
	}
	return NotReached, false
}

// Analyze finds the first time the contaminant series reaches threshold.
func Analyze(traj *dynamo.Trajectory, threshold, horizon float64) Outcome {
	out := Outcome{TimeToSafe: NotReached, Threshold: threshold, Horizon: horizon}
	if traj == nil {
		return out
	}
	out.TimeToSafe, out.Reached = FirstAtOrBelow(traj.Contaminant, traj.Times, threshold)
	return out
}
