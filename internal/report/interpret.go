// Package report turns simulation outcomes into reader-facing sentences.
package report

import (
	"fmt"
	"strconv"

	"github.com/san-kum/phytosim/internal/analysis"
)

const unit = "mg/kg"

// Interpret describes an outcome in one or two sentences.
func Interpret(o analysis.Outcome) string {
	if o.Reached {
		return fmt.Sprintf("Based on the simulation, the nickel level in the soil is predicted to reach the safe threshold (%s %s) after about %.2f years.",
			formatNumber(o.Threshold), unit, o.TimeToSafe)
	}
	return fmt.Sprintf("Under these conditions, the nickel level does not reach the safe threshold (%s %s) within %s years. More time or additional intervention is needed.",
		formatNumber(o.Threshold), unit, formatNumber(o.Horizon))
}

// Failure is the message shown when a run could not be completed.
func Failure(err error) string {
	return "An error occurred during the simulation: " + err.Error()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
