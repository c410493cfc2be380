package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for simulations and the HTTP surface.
type Metrics struct {
	Registry *prometheus.Registry

	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration prometheus.Histogram
	TrajectorySamples  prometheus.Histogram
	TimeToSafe         prometheus.Histogram
	RequestsInFlight   prometheus.Gauge
	RequestsTotal      *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics using a dedicated registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		SimulationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "phytosim",
				Name:      "simulations_total",
				Help:      "Total simulations by outcome (reached, not_reached, error).",
			},
			[]string{"outcome"},
		),

		SimulationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "phytosim",
				Name:      "simulation_duration_seconds",
				Help:      "Wall time spent integrating one run.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),

		TrajectorySamples: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "phytosim",
				Name:      "trajectory_samples",
				Help:      "Number of samples recorded per run.",
				Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
			},
		),

		TimeToSafe: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "phytosim",
				Name:      "time_to_safe_years",
				Help:      "Simulated years until the contaminant reached the threshold.",
				Buckets:   []float64{1, 5, 10, 20, 30, 50, 75, 100, 150},
			},
		),

		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "phytosim",
				Subsystem: "api",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being processed.",
			},
		),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "phytosim",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "HTTP requests by route and status class.",
			},
			[]string{"route", "code"},
		),
	}

	reg.MustRegister(
		m.SimulationsTotal,
		m.SimulationDuration,
		m.TrajectorySamples,
		m.TimeToSafe,
		m.RequestsInFlight,
		m.RequestsTotal,
	)

	return m
}

// RecordSimulation records a completed run. timeToSafe is only observed
// when reached is true.
func (m *Metrics) RecordSimulation(reached bool, durationSec float64, samples int, timeToSafe float64) {
	outcome := "not_reached"
	if reached {
		outcome = "reached"
		m.TimeToSafe.Observe(timeToSafe)
	}
	m.SimulationsTotal.WithLabelValues(outcome).Inc()
	m.SimulationDuration.Observe(durationSec)
	m.TrajectorySamples.Observe(float64(samples))
}

// RecordFailure records a run that returned an error.
func (m *Metrics) RecordFailure() {
	m.SimulationsTotal.WithLabelValues("error").Inc()
}
