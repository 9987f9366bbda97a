// Package telemetry installs the global OpenTelemetry tracer and meter
// providers for the configured exporter.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"gitlab.com/yelinaung/expense-ledger/internal/config"
	"gitlab.com/yelinaung/expense-ledger/internal/logger"
)

// Settings selects the exporter and describes the service.
type Settings struct {
	Exporter    string
	ServiceName string
	Version     string
	// Writer receives stdout exporter output. Defaults to stderr so it
	// does not mix with command output.
	Writer io.Writer
}

// Shutdown flushes and stops the installed providers.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs global providers for s.Exporter. With config.ExporterNone
// the global no-op providers stay in place.
func Setup(ctx context.Context, s Settings) (Shutdown, error) {
	if s.Exporter == "" || s.Exporter == config.ExporterNone {
		return noopShutdown, nil
	}
	if s.Writer == nil {
		s.Writer = os.Stderr
	}

	spanExporter, metricExporter, err := newExporters(ctx, s)
	if err != nil {
		return nil, err
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", s.ServiceName),
		attribute.String("service.version", s.Version),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	logger.Log.Debug().
		Str("exporter", s.Exporter).
		Str("service", s.ServiceName).
		Msg("Telemetry initialized")

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

func newExporters(ctx context.Context, s Settings) (sdktrace.SpanExporter, sdkmetric.Exporter, error) {
	var (
		spans   sdktrace.SpanExporter
		metrics sdkmetric.Exporter
		err     error
	)

	switch s.Exporter {
	case config.ExporterStdout:
		if spans, err = stdouttrace.New(stdouttrace.WithWriter(s.Writer)); err != nil {
			return nil, nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}
		if metrics, err = stdoutmetric.New(stdoutmetric.WithWriter(s.Writer)); err != nil {
			return nil, nil, fmt.Errorf("failed to create stdout metric exporter: %w", err)
		}
	case config.ExporterOTLPGRPC:
		if spans, err = otlptracegrpc.New(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to create OTLP gRPC trace exporter: %w", err)
		}
		if metrics, err = otlpmetricgrpc.New(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to create OTLP gRPC metric exporter: %w", err)
		}
	case config.ExporterOTLPHTTP:
		if spans, err = otlptracehttp.New(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to create OTLP HTTP trace exporter: %w", err)
		}
		if metrics, err = otlpmetrichttp.New(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to create OTLP HTTP metric exporter: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unknown telemetry exporter %q", s.Exporter)
	}

	return spans, metrics, nil
}
