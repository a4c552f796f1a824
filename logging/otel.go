package logging

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelLogger turns each log call into a span on tracer, adapted from the
// teacher's OTelEmitter (which created a span per workflow event; a log
// call is a point in time, so each span here is started and ended at once).
type OTelLogger struct {
	tracer trace.Tracer
}

// NewOTelLogger constructs an OTelLogger.
func NewOTelLogger(tracer trace.Tracer) *OTelLogger {
	return &OTelLogger{tracer: tracer}
}

// Log implements Logger by starting and immediately ending a span named
// after the message, with fields and level recorded as attributes, mirroring
// the teacher's "instant event" span pattern.
func (o *OTelLogger) Log(level Level, msg string, fields map[string]any) {
	ctx := context.Background()
	_, span := o.tracer.Start(ctx, msg)
	defer span.End()

	span.SetAttributes(attribute.String("level", level.String()))
	for k, v := range fields {
		span.SetAttributes(attribute.String(k, fmt.Sprintf("%v", v)))
	}
	if level >= ERROR {
		span.SetStatus(codes.Error, msg)
	}
}
