package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tooltip/pkg/geometry"
)

const (
	defaultTracerName = "tooltip"

	// SpanName is the name of every position computation span.
	SpanName = "tooltip.compute_position"
)

// TraceConfig configures TraceSolver.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "tooltip").
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider

	// Attributes are added to every span.
	Attributes []attribute.KeyValue
}

// TraceOption configures TraceSolver.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(p trace.TracerProvider) TraceOption {
	return func(c *TraceConfig) {
		c.Provider = p
	}
}

// WithAttributes adds attributes to every span.
func WithAttributes(attrs ...attribute.KeyValue) TraceOption {
	return func(c *TraceConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// TraceSolver wraps s so every computation runs in a span recording the
// requested and resolved placement.
//
// The tracer comes from the global OpenTelemetry provider unless
// WithTracerProvider is given. Configure it in main() before creating
// controllers:
//
//	otel.SetTracerProvider(tp)
func TraceSolver(s geometry.Solver, opts ...TraceOption) geometry.Solver {
	config := TraceConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	tracer := config.Provider.Tracer(config.TracerName)

	return geometry.SolverFunc(func(ctx context.Context, req geometry.Request) (geometry.Result, error) {
		attrs := append([]attribute.KeyValue{
			attribute.String("tooltip.placement.requested", req.Placement.String()),
			attribute.Int("tooltip.middleware", len(req.Middleware)),
		}, config.Attributes...)

		ctx, span := tracer.Start(ctx, SpanName,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		res, err := s.Compute(ctx, req)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return res, err
		}

		span.SetAttributes(
			attribute.String("tooltip.placement.resolved", res.Placement.String()),
			attribute.Bool("tooltip.flipped", res.Placement != req.Placement),
			attribute.Float64("tooltip.x", res.X),
			attribute.Float64("tooltip.y", res.Y),
		)
		span.SetStatus(codes.Ok, "")
		return res, nil
	})
}
