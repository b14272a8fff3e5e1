package telemetry

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracingConfig configures span export.
type TracingConfig struct {
	// ServiceName is recorded on every span.
	ServiceName string
	// ServiceVersion is recorded on every span.
	ServiceVersion string
	// Output receives spans as JSON. Nil disables tracing.
	Output io.Writer
	// PrettyPrint indents exported spans.
	PrettyPrint bool
}

// Tracing owns a tracer provider and its exporter.
type Tracing struct {
	provider trace.TracerProvider
	shutdown func(context.Context) error
}

// NewTracing creates a tracer provider exporting to config.Output. With no
// output it returns a no-op provider.
func NewTracing(config TracingConfig) (*Tracing, error) {
	if config.Output == nil {
		return NewNoopTracing(), nil
	}
	if config.ServiceName == "" {
		config.ServiceName = "stackplan"
	}

	opts := []stdouttrace.Option{stdouttrace.WithWriter(config.Output)}
	if config.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, err
	}

	// We don't merge with Default() to avoid schema URL conflicts
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	return &Tracing{provider: tp, shutdown: tp.Shutdown}, nil
}

// NewNoopTracing returns tracing that records nothing.
func NewNoopTracing() *Tracing {
	return &Tracing{
		provider: noop.NewTracerProvider(),
		shutdown: func(context.Context) error { return nil },
	}
}

// Tracer returns a named tracer.
func (t *Tracing) Tracer(name string) trace.Tracer {
	return t.provider.Tracer(name)
}

// Install sets the provider as the global tracer provider.
func (t *Tracing) Install() {
	otel.SetTracerProvider(t.provider)
}

// Shutdown flushes pending spans.
func (t *Tracing) Shutdown(ctx context.Context) error {
	return t.shutdown(ctx)
}
