package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/phytosim/internal/analysis"
	"github.com/san-kum/phytosim/internal/dynamo"
)

const (
	DefaultPlotWidth  = 60
	DefaultPlotHeight = 10
)

// Plots draws the contaminant series against the safe threshold, then the
// biomass series, each in its own frame since their scales differ.
func Plots(traj *dynamo.Trajectory, threshold float64, width, height int) string {
	if traj == nil || traj.Len() == 0 {
		return ""
	}
	if width <= 0 {
		width = DefaultPlotWidth
	}
	if height <= 0 {
		height = DefaultPlotHeight
	}

	span := ""
	if t, _, ok := traj.Final(); ok {
		span = fmt.Sprintf(" over %.0f years", t-traj.Times[0])
	}

	nickel := finite(traj.Contaminant)
	line := make([]float64, len(nickel))
	for i := range line {
		line[i] = threshold
	}
	n := asciigraph.PlotMany([][]float64{nickel, line},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Brown, asciigraph.Red),
		asciigraph.Caption("nickel N (mg/kg)"+span+", threshold "+Number(threshold)),
	)

	a := asciigraph.Plot(finite(traj.Biomass),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Green),
		asciigraph.Caption("biomass A (kg/ha)"+span),
	)

	return n + "\n\n" + a
}

// Phase draws the trajectory in the biomass/contaminant plane with axis
// extents printed underneath.
func Phase(traj *dynamo.Trajectory, width, height int) string {
	grid := analysis.PhasePortraitToASCII(traj, width, height)
	if grid == "" {
		return ""
	}
	b, _ := analysis.PhaseBounds(traj.Phase())

	var sb strings.Builder
	sb.WriteString(grid)
	sb.WriteString(Subtle.Render(fmt.Sprintf("A: %s .. %s   N: %s .. %s",
		Number(b.MinA), Number(b.MaxA), Number(b.MinN), Number(b.MaxN))))
	return sb.String()
}

// finite returns a copy of values with infinities replaced by NaN, which
// asciigraph leaves as gaps.
func finite(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}
