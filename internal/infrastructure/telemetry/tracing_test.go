package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/syncbridge/internal/domain/integration"
	"github.com/erp/syncbridge/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTestTracer installs an in-memory span recorder as the global provider.
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	return sr
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[string(a.Key)] = a.Value
	}
	return m
}

func TestStartServiceSpan(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "catalog_sync", "sync_sku",
		telemetry.SpanAttrSKU, "ABC-1",
		telemetry.SpanAttrERPID, int64(7),
		telemetry.SpanAttrOutcome, integration.OutcomeCreated,
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "catalog_sync.sync_sku", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, "ABC-1", attrs[telemetry.SpanAttrSKU].AsString())
	assert.Equal(t, int64(7), attrs[telemetry.SpanAttrERPID].AsInt64())
	assert.Equal(t, "created", attrs[telemetry.SpanAttrOutcome].AsString())
}

func TestSetAttributes(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "erp_sync", "sync_all")
	telemetry.SetAttributes(span,
		telemetry.SpanAttrItemCount, 3,
		"ratio", 0.5,
		"dry_run", false,
		42, "non-string key is skipped",
		"dangling",
	)
	span.End()

	attrs := attrMap(sr.Ended()[0].Attributes())
	assert.Equal(t, int64(3), attrs[telemetry.SpanAttrItemCount].AsInt64())
	assert.Equal(t, 0.5, attrs["ratio"].AsFloat64())
	assert.False(t, attrs["dry_run"].AsBool())
	assert.Len(t, attrs, 3)
}

func TestRecordError(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "catalog_sync", "sync_catalog")
	telemetry.RecordError(span, errors.New("upstream down"))
	span.End()

	recorded := sr.Ended()[0]
	assert.Equal(t, codes.Error, recorded.Status().Code)
	assert.Equal(t, "upstream down", recorded.Status().Description)
	require.Len(t, recorded.Events(), 1)
}

func TestRecordError_NilValues(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "catalog_sync", "noop")
	telemetry.RecordError(span, nil)
	span.End()

	assert.Equal(t, codes.Unset, sr.Ended()[0].Status().Code)
	assert.NotPanics(t, func() {
		telemetry.RecordError(nil, errors.New("x"))
		telemetry.SetAttributes(nil, "k", "v")
	})
}
