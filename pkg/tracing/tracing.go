// Package tracing wraps the OpenTelemetry tracer used around prep, bake and
// storage calls. Until a provider is installed every span is a no-op.
package tracing

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const traceParentHeader = "traceparent"

var (
	mu     sync.RWMutex
	tracer trace.Tracer
)

func SetTracer(t trace.Tracer) {
	mu.Lock()
	defer mu.Unlock()
	tracer = t
}

func current() trace.Tracer {
	mu.RLock()
	defer mu.RUnlock()
	return tracer
}

// StartSpan starts a child span of the span in ctx. Without a tracer it
// returns ctx unchanged with its current span.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	t := current()
	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError marks span as failed. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil || span == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// GetActiveSpan returns the recorded span in ctx, or nil.
func GetActiveSpan(ctx context.Context) trace.Span {
	if _, ok := spanContext(ctx); !ok {
		return nil
	}
	return trace.SpanFromContext(ctx)
}

func spanContext(ctx context.Context) (trace.SpanContext, bool) {
	if current() == nil {
		return trace.SpanContext{}, false
	}
	sc := trace.SpanContextFromContext(ctx)
	return sc, sc.IsValid()
}

// TraceParent renders the W3C traceparent of the span in ctx, used to carry a
// bake request's trace across Kafka.
func TraceParent(ctx context.Context) string {
	if _, ok := spanContext(ctx); !ok {
		return ""
	}
	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(ctx, carrier)
	return carrier.Get(traceParentHeader)
}

// ContinueTrace returns ctx with the remote parent named by traceparent, so
// spans started from it join the producer's trace. An empty or malformed value
// leaves ctx unchanged.
func ContinueTrace(ctx context.Context, traceparent string) context.Context {
	if traceparent == "" {
		return ctx
	}
	carrier := propagation.MapCarrier{traceParentHeader: traceparent}
	return propagation.TraceContext{}.Extract(ctx, carrier)
}

func TraceID(ctx context.Context) string {
	sc, ok := spanContext(ctx)
	if !ok {
		return ""
	}
	return sc.TraceID().String()
}

func SpanID(ctx context.Context) string {
	sc, ok := spanContext(ctx)
	if !ok {
		return ""
	}
	return sc.SpanID().String()
}
