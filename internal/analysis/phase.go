package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/phytosim/internal/dynamo"
)

// Bounds is the extent of a set of phase-plane points.
type Bounds struct {
	MinA, MaxA float64
	MinN, MaxN float64
}

// PhaseBounds returns the extent of the finite (A, N) pairs. ok is false
// when no pair is finite.
func PhaseBounds(points []dynamo.State) (b Bounds, ok bool) {
	for _, p := range points {
		if !p.IsValid() {
			continue
		}
		if !ok {
			b = Bounds{MinA: p.A, MaxA: p.A, MinN: p.N, MaxN: p.N}
			ok = true
			continue
		}
		b.MinA = math.Min(b.MinA, p.A)
		b.MaxA = math.Max(b.MaxA, p.A)
		b.MinN = math.Min(b.MinN, p.N)
		b.MaxN = math.Max(b.MaxN, p.N)
	}
	return b, ok
}

// Pad widens each axis by frac of its range. A zero range becomes one unit
// wide so that a stationary trajectory still has a scale.
func (b Bounds) Pad(frac float64) Bounds {
	ra, rn := b.MaxA-b.MinA, b.MaxN-b.MinN
	if ra == 0 {
		ra = 1
	}
	if rn == 0 {
		rn = 1
	}
	return Bounds{
		MinA: b.MinA - ra*frac, MaxA: b.MaxA + ra*frac,
		MinN: b.MinN - rn*frac, MaxN: b.MaxN + rn*frac,
	}
}

var phaseGlyphs = []rune{'.', 'o', '●'}

// PhasePortraitToASCII plots biomass on x against contaminant on y. Early,
// middle and late thirds of the run are drawn as '.', 'o' and '●'.
func PhasePortraitToASCII(traj *dynamo.Trajectory, width, height int) string {
	if traj == nil || width < 2 || height < 2 {
		return ""
	}
	points := traj.Phase()
	b, ok := PhaseBounds(points)
	if !ok {
		return ""
	}
	b = b.Pad(0.05)

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}

	cellOf := func(a, n float64) (int, int) {
		col := int((a - b.MinA) / (b.MaxA - b.MinA) * float64(width-1))
		row := height - 1 - int((n-b.MinN)/(b.MaxN-b.MinN)*float64(height-1))
		return row, col
	}

	// zero lines first so samples draw over them
	if b.MinA <= 0 && b.MaxA >= 0 {
		_, col := cellOf(0, b.MinN)
		for r := range grid {
			grid[r][col] = '│'
		}
	}
	if b.MinN <= 0 && b.MaxN >= 0 {
		row, _ := cellOf(b.MinA, 0)
		for c := range grid[row] {
			grid[row][c] = '─'
		}
	}

	for i, p := range points {
		if !p.IsValid() {
			continue
		}
		row, col := cellOf(p.A, p.N)
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		grid[row][col] = phaseGlyphs[i*len(phaseGlyphs)/len(points)]
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
