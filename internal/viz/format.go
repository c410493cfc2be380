package viz

import (
	"math"

	"github.com/dustin/go-humanize"
)

// Number formats v with thousands separators and two decimals. Non-finite
// values are spelled out.
func Number(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return humanize.FormatFloat("#,###.##", v)
}

// Percent formats a fraction in [0,1] as a percentage.
func Percent(frac float64) string {
	if math.IsNaN(frac) {
		return "NaN"
	}
	return humanize.FormatFloat("#,###.#", frac*100) + "%"
}
