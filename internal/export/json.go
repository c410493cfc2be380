package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/phytosim/internal/analysis"
	"github.com/san-kum/phytosim/internal/dynamo"
	"github.com/san-kum/phytosim/internal/models"
	"github.com/san-kum/phytosim/internal/sim"
)

type ExportData struct {
	Integrator string             `json:"integrator"`
	Initial    dynamo.State       `json:"initial"`
	Params     models.Params      `json:"params"`
	Dt         float64            `json:"dt"`
	Span       [2]float64         `json:"span"`
	Steps      int                `json:"steps"`
	Outcome    analysis.Outcome   `json:"outcome"`
	Summary    analysis.Summary   `json:"summary"`
	Metrics    map[string]float64 `json:"metrics"`
	Times      []float64          `json:"times"`
	Biomass    []float64          `json:"biomass"`
	Contam     []float64          `json:"contaminant"`
}

// Meta is the run description that accompanies a result in JSON output.
type Meta struct {
	Integrator string
	Params     models.Params
	Config     sim.Config
}

// WriteJSON encodes the run. JSON has no NaN or Inf, so a diverged
// trajectory is rejected with dynamo.ErrDiverged before anything is written.
func WriteJSON(w io.Writer, meta Meta, result *sim.Result) error {
	traj := result.Trajectory
	if i := traj.FirstNonFinite(); i >= 0 {
		t, _ := traj.At(i)
		return fmt.Errorf("json export: %w at t=%g", dynamo.ErrDiverged, t)
	}
	data := ExportData{
		Integrator: meta.Integrator,
		Params:     meta.Params,
		Dt:         meta.Config.Dt,
		Span:       [2]float64{meta.Config.Span.Start, meta.Config.Span.End},
		Steps:      result.StepsTaken,
		Outcome:    result.Outcome,
		Summary:    result.Summary,
		Metrics:    result.Metrics,
		Times:      traj.Times,
		Biomass:    traj.Biomass,
		Contam:     traj.Contaminant,
	}
	if traj.Len() > 0 {
		_, data.Initial = traj.At(0)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
