package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_NoTracer(t *testing.T) {
	SetTracer(nil)

	ctx, span := StartSpan(context.Background(), "noop")
	defer span.End()

	assert.Nil(t, GetActiveSpan(ctx))
	assert.Empty(t, TraceID(ctx))
	assert.Empty(t, TraceParent(ctx))
}

func TestProvider(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown := NewProvider("fern-test", exporter)
	t.Cleanup(func() {
		_ = shutdown(context.Background())
		SetTracer(nil)
	})

	ctx, span := StartSpan(context.Background(), "steps.bake", StepAttributes("ns_1a2b3", "ns")...)
	assert.NotNil(t, GetActiveSpan(ctx))
	assert.Len(t, TraceID(ctx), 32)
	assert.Len(t, SpanID(ctx), 16)
	assert.Contains(t, TraceParent(ctx), TraceID(ctx))

	RecordError(span, errors.New("boom"))
	RecordError(span, nil)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "steps.bake", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Len(t, spans[0].Attributes, 2)
}

func TestContinueTrace(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown := NewProvider("fern-test", exporter)
	t.Cleanup(func() {
		_ = shutdown(context.Background())
		SetTracer(nil)
	})

	parent := "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	ctx, span := StartSpan(ContinueTrace(context.Background(), parent), "processor.ProcessMessage")
	span.End()

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", TraceID(ctx))
	assert.NotEqual(t, "00f067aa0ba902b7", SpanID(ctx))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent.SpanID().String())

	assert.Equal(t, context.Background(), ContinueTrace(context.Background(), ""))
}
