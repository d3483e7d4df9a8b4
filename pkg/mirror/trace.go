package mirror

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation name spans are created under.
const tracerName = "svgmirror"

// Span names.
const (
	spanAttach   = "svgmirror.attach"
	spanDispatch = "svgmirror.dispatch"
)

func resolveTracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(tracerName)
}

// startSpan starts an internal span. Dispatch runs from Document.Flush,
// which carries no context, so spans are roots.
func (e *Engine) startSpan(name string, attrs ...attribute.KeyValue) trace.Span {
	_, span := e.tracer.Start(
		context.Background(),
		name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	return span
}

// endSpan records the outcome of a batch and ends the span.
func endSpan(span trace.Span, patches int, errs []error) {
	span.SetAttributes(attribute.Int("svgmirror.patch_count", patches))
	if len(errs) > 0 {
		for _, err := range errs {
			span.RecordError(err)
		}
		span.SetStatus(codes.Error, errs[0].Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
