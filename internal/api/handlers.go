package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/codes"

	"github.com/san-kum/phytosim/internal/config"
	"github.com/san-kum/phytosim/internal/content"
	"github.com/san-kum/phytosim/internal/dynamo"
	"github.com/san-kum/phytosim/internal/experiment"
	"github.com/san-kum/phytosim/internal/monitor"
	"github.com/san-kum/phytosim/internal/report"
	"github.com/san-kum/phytosim/internal/sim"
)

type Handlers struct {
	cfg      *config.Config
	articles []content.Article
	metrics  *monitor.Metrics
	tracer   *monitor.Tracer
}

func NewHandlers(cfg *config.Config, articles []content.Article, metrics *monitor.Metrics) *Handlers {
	return &Handlers{
		cfg:      cfg,
		articles: articles,
		metrics:  metrics,
		tracer:   monitor.NewTracer(),
	}
}

func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, "index.html", h.basePage(
		formatFloat(h.cfg.Run.Biomass), formatFloat(h.cfg.Run.Contaminant)))
}

// HandleSimulateForm runs the form submission and renders the result page.
// Any failure is shown in place of the interpretation.
func (h *Handlers) HandleSimulateForm(w http.ResponseWriter, r *http.Request) {
	b, n := r.FormValue("biomass"), r.FormValue("contaminant")
	data := h.basePage(b, n)

	x0, err := parseInitial(b, n)
	if err != nil {
		data.Error = report.Failure(err)
		renderPage(w, r, http.StatusBadRequest, "result.html", data)
		return
	}

	res, _, err := h.simulate(r.Context(), x0)
	if err != nil {
		data.Error = report.Failure(err)
		renderPage(w, r, statusFor(err), "result.html", data)
		return
	}

	data.Interpretation = report.Interpret(res.Outcome)
	data.Reached = res.Outcome.Reached
	data.Summary = res.Summary
	data.ChartURL = "/charts?" + url.Values{"biomass": {b}, "contaminant": {n}}.Encode()
	renderPage(w, r, http.StatusOK, "result.html", data)
}

// HandleCharts recomputes the run from the query and renders the chart page.
func (h *Handlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x0, err := parseInitial(q.Get("biomass"), q.Get("contaminant"))
	if err != nil {
		http.Error(w, report.Failure(err), http.StatusBadRequest)
		return
	}
	res, _, err := h.simulate(r.Context(), x0)
	if err != nil {
		http.Error(w, report.Failure(err), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderCharts(w, res.Trajectory, res.Outcome.Threshold); err != nil {
		log.Error().Err(err).Str("request_id", RequestIDFromContext(r.Context())).Msg("failed to render charts")
	}
}

func (h *Handlers) HandleSimulateAPI(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON: "+err.Error(), "INVALID_REQUEST", http.StatusBadRequest, r)
		return
	}
	if req.Biomass == nil || req.Contaminant == nil {
		writeError(w, "biomass and contaminant are required", "INVALID_REQUEST", http.StatusBadRequest, r)
		return
	}

	id := uuid.New().String()
	ctx := context.WithValue(r.Context(), contextKeyRunID, id)
	res, dur, err := h.simulate(ctx, dynamo.State{A: *req.Biomass, N: *req.Contaminant})
	if err != nil {
		writeError(w, err.Error(), codeFor(err), statusFor(err), r)
		return
	}

	resp := SimulationResponse{
		ID:             id,
		Interpretation: report.Interpret(res.Outcome),
		Outcome:        res.Outcome,
		Summary:        res.Summary,
		Metrics:        res.Metrics,
		StepsTaken:     res.StepsTaken,
		Duration:       dur.String(),
	}
	if v, _ := strconv.ParseBool(r.URL.Query().Get("trajectory")); v {
		resp.Trajectory = res.Trajectory
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) HandleArticles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.articles)
}

const contextKeyRunID contextKey = "run_id"

// simulate runs one independent simulation with the configured span, step
// and threshold, recording a span and metrics for it.
func (h *Handlers) simulate(ctx context.Context, x0 dynamo.State) (*sim.Result, time.Duration, error) {
	runID, _ := ctx.Value(contextKeyRunID).(string)
	ctx, span := h.tracer.StartSpan(ctx, "simulate",
		monitor.AttrRunID.String(runID),
		monitor.AttrBiomass.Float64(x0.A),
		monitor.AttrContaminant.Float64(x0.N),
		monitor.AttrIntegrator.String(h.cfg.Run.Integrator),
	)
	defer span.End()

	cfg := *h.cfg
	cfg.Run.Biomass, cfg.Run.Contaminant = x0.A, x0.N

	start := time.Now()
	res, err := experiment.Run(ctx, &cfg)
	dur := time.Since(start)
	if err == nil {
		if i := res.Trajectory.FirstNonFinite(); i >= 0 {
			t, _ := res.Trajectory.At(i)
			err = fmt.Errorf("%w at t=%g", dynamo.ErrDiverged, t)
		}
	}
	if err != nil {
		h.metrics.RecordFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn().Err(err).Float64("biomass", x0.A).Float64("contaminant", x0.N).Msg("simulation failed")
		return nil, dur, err
	}

	h.metrics.RecordSimulation(res.Outcome.Reached, dur.Seconds(), res.Trajectory.Len(), res.Outcome.TimeToSafe)
	span.SetAttributes(
		monitor.AttrReached.Bool(res.Outcome.Reached),
		monitor.AttrTimeToSafe.Float64(res.Outcome.TimeToSafe),
		monitor.AttrSamples.Int(res.Trajectory.Len()),
	)
	log.Debug().
		Float64("biomass", x0.A).
		Float64("contaminant", x0.N).
		Bool("reached", res.Outcome.Reached).
		Float64("time_to_safe", res.Outcome.TimeToSafe).
		Dur("duration", dur).
		Msg("simulation completed")
	return res, dur, nil
}

func (h *Handlers) basePage(biomass, contaminant string) pageData {
	return pageData{
		Title:       "Phytoremediation simulator",
		Biomass:     biomass,
		Contaminant: contaminant,
		Threshold:   formatFloat(h.cfg.Run.Threshold),
		Horizon:     formatFloat(h.cfg.Run.End),
		Articles:    h.articles,
	}
}

// parseInitial rejects anything that is not a finite decimal number.
func parseInitial(biomass, contaminant string) (dynamo.State, error) {
	a, err := parseValue("biomass", biomass)
	if err != nil {
		return dynamo.State{}, err
	}
	n, err := parseValue("contaminant", contaminant)
	if err != nil {
		return dynamo.State{}, err
	}
	return dynamo.State{A: a, N: n}, nil
}

func parseValue(name, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: %s is required", dynamo.ErrInvalidState, name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !dynamo.Finite(v) {
		return 0, fmt.Errorf("%w: %s must be a finite number, got %q", dynamo.ErrInvalidState, name, s)
	}
	return v, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dynamo.ErrInvalidState),
		errors.Is(err, dynamo.ErrInvalidStep),
		errors.Is(err, dynamo.ErrInvalidSpan),
		errors.Is(err, dynamo.ErrParameterBounds),
		errors.Is(err, dynamo.ErrTooManySamples):
		return http.StatusBadRequest
	case errors.Is(err, dynamo.ErrDiverged), errors.Is(err, dynamo.ErrStepTooSmall):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dynamo.ErrContextCanceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func codeFor(err error) string {
	switch statusFor(err) {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusUnprocessableEntity:
		return "DIVERGED"
	case http.StatusServiceUnavailable:
		return "CANCELED"
	}
	return "INTERNAL"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, msg, code string, status int, r *http.Request) {
	resp := ErrorResponse{
		Error:     msg,
		Code:      code,
		RequestID: RequestIDFromContext(r.Context()),
	}
	writeJSON(w, status, resp)
}
