package application

import (
	"github.com/felixgeelhaar/bolt/v3"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/stackplan/domain/search"
	"github.com/felixgeelhaar/stackplan/domain/statespace"
	"github.com/felixgeelhaar/stackplan/infrastructure/telemetry"
)

// Option configures the planner.
type Option func(*PlannerConfig)

// WithBudget sets the expansion budget of every search. Zero disables the limit.
func WithBudget(n int) Option {
	return func(c *PlannerConfig) {
		c.Budget = n
	}
}

// WithDisplacementCost sets the per-displacement constant of the heuristic.
func WithDisplacementCost(k int) Option {
	return func(c *PlannerConfig) {
		c.DisplacementCost = k
	}
}

// WithSearcher replaces the search primitive.
func WithSearcher(s search.Searcher[*statespace.Node]) Option {
	return func(c *PlannerConfig) {
		c.Searcher = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *bolt.Logger) Option {
	return func(c *PlannerConfig) {
		c.Logger = l
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m telemetry.Metrics) Option {
	return func(c *PlannerConfig) {
		c.Metrics = m
	}
}

// WithTracer sets the tracer used for plan and attempt spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *PlannerConfig) {
		c.Tracer = t
	}
}

// WithIDGenerator replaces the request ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *PlannerConfig) {
		c.NewID = fn
	}
}
