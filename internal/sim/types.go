package sim

import (
	"github.com/san-kum/phytosim/internal/analysis"
	"github.com/san-kum/phytosim/internal/dynamo"
)

const (
	DefaultStart      = 0.0
	DefaultEnd        = 150.0
	DefaultDt         = 0.1
	DefaultThreshold  = 75.0
	DefaultMaxSamples = 1_000_000
)

type Config struct {
	Span      dynamo.Span
	Dt        float64
	Threshold float64

	// MaxSamples bounds the trajectory length; zero means no bound.
	MaxSamples int

	// ValidateState rejects non-finite initial conditions before the run.
	// When false they propagate through the arithmetic unchanged.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Span:          dynamo.Span{Start: DefaultStart, End: DefaultEnd},
		Dt:            DefaultDt,
		Threshold:     DefaultThreshold,
		MaxSamples:    DefaultMaxSamples,
		ValidateState: true,
	}
}

type Result struct {
	Trajectory *dynamo.Trajectory `json:"trajectory"`
	Outcome    analysis.Outcome   `json:"outcome"`
	Summary    analysis.Summary   `json:"summary"`
	Metrics    map[string]float64 `json:"metrics"`
	StepsTaken int                `json:"steps_taken"`
}
