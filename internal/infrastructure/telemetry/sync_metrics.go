package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/erp/syncbridge/internal/domain/integration"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when SyncMetrics is built without a meter
var ErrMeterNil = errors.New("telemetry: meter is nil")

// SyncMetricsConfig holds configuration for SyncMetrics
type SyncMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// SyncMetrics records reconciliation counters and pass durations.
//
// Metrics:
//   - sync_outcomes_total{outcome}: per-item ERP to storefront outcomes
//   - sync_erp_writes_total{result}: ERP write-backs by result
//   - sync_pass_duration_seconds{direction}: whole-pass duration
type SyncMetrics struct {
	outcomes     *Counter
	erpWrites    *Counter
	passDuration *Histogram
	logger       *zap.Logger
}

// NewSyncMetrics creates the reconciliation instruments on the given meter
func NewSyncMetrics(cfg SyncMetricsConfig) (*SyncMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	outcomes, err := NewCounter(cfg.Meter, "sync_outcomes_total", "Per-item catalog sync outcomes", "{item}")
	if err != nil {
		return nil, err
	}
	erpWrites, err := NewCounter(cfg.Meter, "sync_erp_writes_total", "ERP product write-backs", "{write}")
	if err != nil {
		return nil, err
	}
	passDuration, err := NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "sync_pass_duration_seconds",
		Description: "Duration of a full reconciliation pass",
		Unit:        "s",
		Boundaries:  SyncPassDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		outcomes:     outcomes,
		erpWrites:    erpWrites,
		passDuration: passDuration,
		logger:       logger,
	}, nil
}

// RecordOutcome counts one per-item outcome
func (m *SyncMetrics) RecordOutcome(ctx context.Context, kind integration.SyncOutcomeKind) {
	m.outcomes.Inc(ctx, AttrOutcome.String(kind.String()))
}

// RecordERPWrite counts one ERP write-back, failed when err is non-nil
func (m *SyncMetrics) RecordERPWrite(ctx context.Context, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.erpWrites.Inc(ctx, AttrResult.String(result))
}

// RecordPass records the duration of a reconciliation pass
func (m *SyncMetrics) RecordPass(ctx context.Context, direction string, duration time.Duration) {
	m.passDuration.RecordDuration(ctx, duration, AttrDirection.String(direction))
	m.logger.Debug("sync pass recorded",
		zap.String("direction", direction),
		zap.Duration("duration", duration),
	)
}
