package api

import (
	"github.com/san-kum/phytosim/internal/analysis"
	"github.com/san-kum/phytosim/internal/dynamo"
)

// SimulationRequest carries the two initial conditions. Both are required;
// pointers distinguish a missing field from an explicit zero.
type SimulationRequest struct {
	Biomass     *float64 `json:"biomass"`
	Contaminant *float64 `json:"contaminant"`
}

// SimulationResponse is returned by POST /api/v1/simulations.
type SimulationResponse struct {
	ID             string             `json:"id"`
	Interpretation string             `json:"interpretation"`
	Outcome        analysis.Outcome   `json:"outcome"`
	Summary        analysis.Summary   `json:"summary"`
	Metrics        map[string]float64 `json:"metrics"`
	StepsTaken     int                `json:"steps_taken"`
	Duration       string             `json:"duration"`
	Trajectory     *dynamo.Trajectory `json:"trajectory,omitempty"` // only with ?trajectory=true
}

// ErrorResponse is returned for API errors.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
