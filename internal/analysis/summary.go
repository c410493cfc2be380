package analysis

import (
	"math"

	"github.com/san-kum/phytosim/internal/dynamo"
)

// Summary condenses a trajectory into the figures shown next to the plots.
type Summary struct {
	Samples            int     `json:"samples"`
	InitialBiomass     float64 `json:"initial_biomass"`
	FinalBiomass       float64 `json:"final_biomass"`
	PeakBiomass        float64 `json:"peak_biomass"`
	PeakBiomassTime    float64 `json:"peak_biomass_time"`
	InitialContaminant float64 `json:"initial_contaminant"`
	FinalContaminant   float64 `json:"final_contaminant"`
	MinContaminant     float64 `json:"min_contaminant"`
	RemovalFraction    float64 `json:"removal_fraction"`
}

func Summarize(traj *dynamo.Trajectory) Summary {
	if traj == nil || traj.Len() == 0 {
		return Summary{}
	}

	_, first := traj.At(0)
	_, last, _ := traj.Final()

	s := Summary{
		Samples:            traj.Len(),
		InitialBiomass:     first.A,
		FinalBiomass:       last.A,
		PeakBiomass:        first.A,
		PeakBiomassTime:    traj.Times[0],
		InitialContaminant: first.N,
		FinalContaminant:   last.N,
		MinContaminant:     first.N,
	}

	for i := 1; i < traj.Len(); i++ {
		if traj.Biomass[i] > s.PeakBiomass {
			s.PeakBiomass = traj.Biomass[i]
			s.PeakBiomassTime = traj.Times[i]
		}
		if traj.Contaminant[i] < s.MinContaminant {
			s.MinContaminant = traj.Contaminant[i]
		}
	}

	s.RemovalFraction = RemovalFraction(first.N, last.N)
	return s
}

// RemovalFraction is the share of the initial contaminant that is gone.
// It is zero when there was nothing to remove.
func RemovalFraction(initial, final float64) float64 {
	if initial == 0 || math.IsNaN(initial) || math.IsNaN(final) {
		return 0
	}
	return (initial - final) / initial
}
