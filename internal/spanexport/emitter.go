// Package spanexport re-emits matched intervals as OpenTelemetry spans.
package spanexport

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrzor/signpost-summary/internal/correlator"
	"github.com/mrzor/signpost-summary/internal/timesync"
)

// Emitter creates one span per matched interval, named after the interval,
// timed by anchoring the export's relative timestamps to wall clock.
type Emitter struct {
	tracer    trace.Tracer
	converter *timesync.Converter
	subsystem string
	category  string
}

// New creates an Emitter.
func New(tracer trace.Tracer, converter *timesync.Converter, subsystem, category string) *Emitter {
	return &Emitter{
		tracer:    tracer,
		converter: converter,
		subsystem: subsystem,
		category:  category,
	}
}

// IntervalClosed emits the interval as a completed span. Implements
// correlator.Sink.
func (e *Emitter) IntervalClosed(name string, key correlator.Key, startNS, endNS int64) {
	_, span := e.tracer.Start(context.Background(), name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithTimestamp(e.converter.ToWallClock(startNS)),
	)

	span.SetAttributes(
		attribute.String("signpost.subsystem", e.subsystem),
		attribute.String("signpost.category", e.category),
		attribute.String("signpost.thread", key.Thread),
		attribute.String("signpost.identifier", key.Correlation),
		attribute.Int64("signpost.duration_ns", endNS-startNS),
	)

	span.End(trace.WithTimestamp(e.converter.ToWallClock(endNS)))
}
