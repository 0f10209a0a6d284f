// Package telemetry wires the optional OTLP trace exporter. Tracing is an
// injected collaborator: without an endpoint every component receives a noop
// tracer and functional behavior is unchanged.
package telemetry

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const endpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"

func noopSetup() (trace.Tracer, func(context.Context) error) {
	return noop.NewTracerProvider().Tracer("usagectl"), func(context.Context) error { return nil }
}

// Setup returns the process tracer and a shutdown hook. The exporter reads
// the remaining OTEL_EXPORTER_OTLP_* variables (headers, certificates)
// itself; we only gate on the endpoint being present.
func Setup(ctx context.Context, service string) (trace.Tracer, func(context.Context) error, error) {
	if strings.TrimSpace(os.Getenv(endpointEnv)) == "" {
		tracer, shutdown := noopSetup()
		return tracer, shutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		tracer, shutdown := noopSetup()
		return tracer, shutdown, err
	}

	res, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(service)),
	)
	if err != nil {
		res = sdkresource.Default()
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Tracer(service), tp.Shutdown, nil
}
