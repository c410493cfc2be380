package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/phytosim/internal/analysis"
	"github.com/san-kum/phytosim/internal/dynamo"
)

// PhaseSVG draws the biomass/contaminant path as a single SVG polyline with
// biomass on x and contaminant on y. Non-finite samples are skipped.
func PhaseSVG(traj *dynamo.Trajectory, width, height int, strokeColor string) string {
	if traj == nil || traj.Len() < 2 {
		return ""
	}
	points := traj.Phase()
	b, ok := analysis.PhaseBounds(points)
	if !ok {
		return ""
	}
	b = b.Pad(0.1)
	rangeA := b.MaxA - b.MinA
	rangeN := b.MaxN - b.MinN

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, strokeColor)

	cmd := "M"
	for _, p := range points {
		if !p.IsValid() {
			continue
		}
		x := (p.A - b.MinA) / rangeA * float64(width)
		y := float64(height) - (p.N-b.MinN)/rangeN*float64(height)
		fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, x, y)
		cmd = " L"
	}

	sb.WriteString("\"/>\n")
	sb.WriteString(axisLabels(width, height))
	sb.WriteString("</svg>\n")
	return sb.String()
}

func axisLabels(width, height int) string {
	return fmt.Sprintf(`<text x="%d" y="%d" font-size="12" text-anchor="end" fill="#555">biomass A (kg/ha)</text>
<text x="4" y="14" font-size="12" fill="#555">nickel N (mg/kg)</text>
`, width-4, height-4)
}
