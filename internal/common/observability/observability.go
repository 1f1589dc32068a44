package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/otlptranslator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"assessment-runner/internal/common/errors"
)

type Options struct {
	ServiceName string
	// Registerer receives the otel prometheus exporter. Nil means the
	// prometheus default registerer.
	Registerer     prometheus.Registerer
	SpanProcessors []sdktrace.SpanProcessor
}

// Observability carries the run's tracer and run-level instruments.
// A nil *Observability is valid and records nothing.
type Observability struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	runCounter     otelmetric.Int64Counter
	runDuration    otelmetric.Float64Histogram
}

func New(opts Options) (*Observability, error) {
	res := resource.NewSchemaless(attribute.String("service.name", opts.ServiceName))

	exporterOpts := []otelprom.Option{
		otelprom.WithTranslationStrategy(otlptranslator.UnderscoreEscapingWithSuffixes),
	}
	if opts.Registerer != nil {
		exporterOpts = append(exporterOpts, otelprom.WithRegisterer(opts.Registerer))
	}
	exporter, err := otelprom.New(exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	for _, sp := range opts.SpanProcessors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
	}
	tracerProvider := sdktrace.NewTracerProvider(tpOpts...)

	otel.SetMeterProvider(meterProvider)
	otel.SetTracerProvider(tracerProvider)

	meter := meterProvider.Meter(opts.ServiceName)

	runCounter, err := meter.Int64Counter(
		"assessment.run.executions",
		otelmetric.WithDescription("Number of assessment runs by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("create run counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram(
		"assessment.run.duration",
		otelmetric.WithDescription("Wall time of an assessment run"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create run duration histogram: %w", err)
	}

	return &Observability{
		meterProvider:  meterProvider,
		tracerProvider: tracerProvider,
		tracer:         tracerProvider.Tracer(opts.ServiceName),
		runCounter:     runCounter,
		runDuration:    runDuration,
	}, nil
}

// StartSpan opens a span named name under ctx.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	var tracer trace.Tracer = noop.NewTracerProvider().Tracer("")
	if o != nil && o.tracer != nil {
		tracer = o.tracer
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan marks span failed when err is set, tagging it with the error code, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		code := string(errors.CodeOf(err))
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.code", code))
		span.SetStatus(codes.Error, code)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (o *Observability) RecordRun(ctx context.Context, outcome string, elapsed time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(attribute.String("outcome", outcome))
	if o.runCounter != nil {
		o.runCounter.Add(ctx, 1, attrs)
	}
	if o.runDuration != nil {
		o.runDuration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
	}
}

// Shutdown flushes and stops both providers.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil {
		return nil
	}
	var firstErr error
	if o.tracerProvider != nil {
		if err := o.tracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if o.meterProvider != nil {
		if err := o.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
