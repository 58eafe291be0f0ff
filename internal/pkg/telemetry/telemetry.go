// Package telemetry initializes OpenTelemetry logging, metrics, and tracing
// with OTLP exporters over gRPC. It builds a single Resource identifying the
// service, registers the global providers, and returns a ShutdownFunc that
// flushes and stops every pipeline on termination.
package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// loggerProvider holds the LoggerProvider created by Init so the logger
// package can bridge zap records into the telemetry pipeline. It stays nil
// when telemetry is disabled.
var loggerProvider *sdklog.LoggerProvider

// LoggerProvider returns the registered LoggerProvider, or nil when
// telemetry has not been initialized.
func LoggerProvider() *sdklog.LoggerProvider {
	return loggerProvider
}

// ShutdownFunc flushes and stops all telemetry providers. Call it during
// application shutdown so no telemetry data is lost.
type ShutdownFunc func(ctx context.Context) error

// newResource merges the default system resource with the service name
// attribute used to identify this process in the observability backend.
func newResource(serviceName string) (*sdkresource.Resource, error) {
	return sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

// initLoggerProvider sets up an OTLP gRPC LoggerProvider with a batch
// processor and stores it for retrieval via LoggerProvider().
func initLoggerProvider(ctx context.Context, res *sdkresource.Resource) (*sdklog.LoggerProvider, error) {
	exporter, err := otlploggrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)

	loggerProvider = lp
	return lp, nil
}

// initMeterProvider sets up an OTLP gRPC MeterProvider with a periodic
// reader and registers it as the global MeterProvider.
func initMeterProvider(ctx context.Context, res *sdkresource.Resource) (*sdkmetric.MeterProvider, error) {
	exporter, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)
	return mp, nil
}

// initTracerProvider sets up an OTLP gRPC TracerProvider with a batched
// exporter and registers it as the global TracerProvider.
func initTracerProvider(ctx context.Context, res *sdkresource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	return tp, nil
}

// Init configures OpenTelemetry logging, metrics, and tracing for the named
// service using OTLP over gRPC. The exporter endpoints are taken from the
// standard OTEL_* environment variables.
//
// It returns a ShutdownFunc that must be invoked at application shutdown to
// flush all pipelines, or an error if any provider fails to initialize.
func Init(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, err
	}

	lp, err := initLoggerProvider(ctx, res)
	if err != nil {
		return nil, err
	}

	mp, err := initMeterProvider(ctx, res)
	if err != nil {
		return nil, err
	}

	tp, err := initTracerProvider(ctx, res)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(
			lp.Shutdown(ctx),
			mp.Shutdown(ctx),
			tp.Shutdown(ctx),
		)
	}, nil
}
