package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), Config{ServiceName: "bridge"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.TracingEnabled())
	assert.False(t, p.MetricsEnabled())
	assert.NotNil(t, p.Tracer("bridge"))
	assert.NotNil(t, p.Meter("bridge"))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_NilLogger(t *testing.T) {
	p, err := Setup(context.Background(), Config{}, nil)
	require.NoError(t, err)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestProviders_NilReceiver(t *testing.T) {
	var p *Providers
	assert.False(t, p.TracingEnabled())
	assert.False(t, p.MetricsEnabled())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestProviders_NoopInstruments(t *testing.T) {
	p, err := Setup(context.Background(), Config{}, zap.NewNop())
	require.NoError(t, err)

	_, span := p.Tracer("bridge").Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	counter, err := NewCounter(p.Meter("bridge"), "noop_total", "noop", "{call}")
	require.NoError(t, err)
	counter.Inc(context.Background())
}

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1, sdktrace.ParentBased(sdktrace.AlwaysSample()).Description()},
		{2, sdktrace.ParentBased(sdktrace.AlwaysSample()).Description()},
		{0, sdktrace.ParentBased(sdktrace.NeverSample()).Description()},
		{0.25, sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.25)).Description()},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sampler(tt.ratio).Description(), tt.ratio)
	}
}
