package monitor

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "phytosim"

// Tracer wraps OpenTelemetry tracing. Without a configured provider the
// global no-op provider is used.
type Tracer struct {
	tracer trace.Tracer
}

func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(tracerName),
	}
}

func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, fmt.Sprintf("phytosim.%s", name),
		trace.WithAttributes(attrs...),
	)
}

func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

var (
	AttrRunID       = attribute.Key("phytosim.run.id")
	AttrBiomass     = attribute.Key("phytosim.initial.biomass")
	AttrContaminant = attribute.Key("phytosim.initial.contaminant")
	AttrIntegrator  = attribute.Key("phytosim.integrator")
	AttrReached     = attribute.Key("phytosim.outcome.reached")
	AttrTimeToSafe  = attribute.Key("phytosim.outcome.time_to_safe")
	AttrSamples     = attribute.Key("phytosim.trajectory.samples")
)
