// Package telemetry provides OpenTelemetry metrics and tracing for the
// planner.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider provides access to metrics instruments.
type MetricsProvider struct {
	meter metric.Meter

	// Counters
	attempts metric.Int64Counter
	plans    metric.Int64Counter

	// Histograms
	visited          metric.Int64Histogram
	planLength       metric.Int64Histogram
	attemptDuration  metric.Float64Histogram
	planningDuration metric.Float64Histogram

	initErr error
}

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	// MeterName is the name of the meter (default: "github.com/felixgeelhaar/stackplan").
	MeterName string
	// MeterVersion is the version of the meter.
	MeterVersion string
	// Provider overrides the global meter provider.
	Provider metric.MeterProvider
}

// DefaultMetricsConfig returns a default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    "github.com/felixgeelhaar/stackplan",
		MeterVersion: "1.0.0",
	}
}

// NewMetricsProvider creates a new metrics provider.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	if config.MeterName == "" {
		config.MeterName = DefaultMetricsConfig().MeterName
	}

	provider := config.Provider
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(
		config.MeterName,
		metric.WithInstrumentationVersion(config.MeterVersion),
	)

	mp := &MetricsProvider{
		meter: meter,
	}
	mp.initErr = mp.initInstruments()

	return mp
}

// initInstruments initializes all metric instruments.
func (mp *MetricsProvider) initInstruments() error {
	var err error

	mp.attempts, err = mp.meter.Int64Counter(
		"stackplan.attempts",
		metric.WithDescription("Number of interpretation attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return err
	}

	mp.plans, err = mp.meter.Int64Counter(
		"stackplan.plans",
		metric.WithDescription("Number of Plan calls"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return err
	}

	mp.visited, err = mp.meter.Int64Histogram(
		"stackplan.search.visited",
		metric.WithDescription("Nodes expanded per attempt"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return err
	}

	mp.planLength, err = mp.meter.Int64Histogram(
		"stackplan.plan.length",
		metric.WithDescription("Actions in a solved plan"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return err
	}

	mp.attemptDuration, err = mp.meter.Float64Histogram(
		"stackplan.attempt.duration",
		metric.WithDescription("Duration of one interpretation attempt"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.planningDuration, err = mp.meter.Float64Histogram(
		"stackplan.planning.duration",
		metric.WithDescription("Duration of Plan calls"),
		metric.WithUnit("ms"),
	)
	return err
}

// Error returns any initialization error.
func (mp *MetricsProvider) Error() error {
	return mp.initErr
}

// RecordAttempt records one finished interpretation attempt.
func (mp *MetricsProvider) RecordAttempt(outcome string, visited, planLength int, elapsed time.Duration) {
	if mp.initErr != nil {
		return
	}

	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	mp.attempts.Add(ctx, 1, attrs)
	mp.visited.Record(ctx, int64(visited), attrs)
	mp.attemptDuration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
	if outcome == "solved" {
		mp.planLength.Record(ctx, int64(planLength))
	}
}

// RecordPlan records one Plan call.
func (mp *MetricsProvider) RecordPlan(ctx context.Context, solutions int, duration time.Duration) {
	if mp.initErr != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.Bool("success", solutions > 0))

	mp.plans.Add(ctx, 1, attrs)
	mp.planningDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

// NoopMetricsProvider is a no-op metrics provider for testing or when metrics are disabled.
type NoopMetricsProvider struct{}

// RecordAttempt is a no-op.
func (NoopMetricsProvider) RecordAttempt(string, int, int, time.Duration) {}

// RecordPlan is a no-op.
func (NoopMetricsProvider) RecordPlan(context.Context, int, time.Duration) {}

// Metrics defines the interface for metrics recording.
type Metrics interface {
	RecordAttempt(outcome string, visited, planLength int, elapsed time.Duration)
	RecordPlan(ctx context.Context, solutions int, duration time.Duration)
}

// Ensure implementations satisfy the interface.
var (
	_ Metrics = (*MetricsProvider)(nil)
	_ Metrics = NoopMetricsProvider{}
)
