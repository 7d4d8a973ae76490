package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Config controls span and metric export for the bridge.
type Config struct {
	TracingEnabled    bool
	MetricsEnabled    bool
	CollectorEndpoint string
	SamplingRatio     float64
	MetricsInterval   time.Duration
	ServiceName       string
	ServiceVersion    string
	Insecure          bool
}

// Providers owns the SDK tracer and meter providers. Either may be nil
// when its signal is disabled, in which case the accessors hand out no-op
// implementations.
type Providers struct {
	serviceName string
	tracer      *sdktrace.TracerProvider
	meter       *sdkmetric.MeterProvider
	logger      *zap.Logger
}

// Setup builds the enabled providers and registers them globally so that
// otelgin and otel.Tracer pick them up.
func Setup(ctx context.Context, cfg Config, logger *zap.Logger) (*Providers, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Providers{serviceName: cfg.ServiceName, logger: logger}
	if !cfg.TracingEnabled && !cfg.MetricsEnabled {
		logger.Info("Telemetry disabled")
		return p, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}

	if cfg.TracingEnabled {
		if p.tracer, err = newTracer(ctx, cfg, res); err != nil {
			return nil, err
		}
		otel.SetTracerProvider(p.tracer)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	if cfg.MetricsEnabled {
		if p.meter, err = newMeter(ctx, cfg, res); err != nil {
			if p.tracer != nil {
				_ = p.tracer.Shutdown(ctx)
			}
			return nil, err
		}
		otel.SetMeterProvider(p.meter)
	}

	logger.Info("Telemetry initialized",
		zap.String("endpoint", cfg.CollectorEndpoint),
		zap.Bool("tracing", cfg.TracingEnabled),
		zap.Bool("metrics", cfg.MetricsEnabled),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
	)
	return p, nil
}

func newTracer(ctx context.Context, cfg Config, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SamplingRatio)),
	), nil
}

func newMeter(ctx context.Context, cfg Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}
	interval := cfg.MetricsInterval
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
		sdkmetric.WithResource(res),
	), nil
}

// sampler keeps parent decisions and samples root spans by ratio.
func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

// TracingEnabled reports whether spans are exported.
func (p *Providers) TracingEnabled() bool { return p != nil && p.tracer != nil }

// MetricsEnabled reports whether metrics are exported.
func (p *Providers) MetricsEnabled() bool { return p != nil && p.meter != nil }

// Tracer returns a named tracer, or a no-op tracer when tracing is off.
func (p *Providers) Tracer(name string) trace.Tracer {
	if !p.TracingEnabled() {
		return tracenoop.NewTracerProvider().Tracer(name)
	}
	return p.tracer.Tracer(name)
}

// Meter returns a named meter, or a no-op meter when metrics are off.
func (p *Providers) Meter(name string) metric.Meter {
	if !p.MetricsEnabled() {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return p.meter.Meter(name)
}

// Shutdown flushes both providers. It is safe to call on a disabled set.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.tracer != nil {
		if err := p.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if p.meter != nil {
		if err := p.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	p.logger.Info("Telemetry shut down", zap.String("service", p.serviceName))
	return nil
}
