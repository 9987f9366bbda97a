package telemetry

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"gitlab.com/yelinaung/expense-ledger/internal/config"
)

func restoreGlobals(t *testing.T) {
	t.Helper()
	tp := otel.GetTracerProvider()
	mp := otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
	})
}

func TestSetup(t *testing.T) {
	ctx := context.Background()

	t.Run("none keeps the global providers", func(t *testing.T) {
		restoreGlobals(t)
		before := otel.GetTracerProvider()

		shutdown, err := Setup(ctx, Settings{Exporter: config.ExporterNone, ServiceName: "test"})
		require.NoError(t, err)
		require.Equal(t, before, otel.GetTracerProvider())
		require.NoError(t, shutdown(ctx))
	})

	t.Run("stdout writes spans and metrics on shutdown", func(t *testing.T) {
		restoreGlobals(t)
		var buf bytes.Buffer

		shutdown, err := Setup(ctx, Settings{
			Exporter:    config.ExporterStdout,
			ServiceName: "ledger-test",
			Version:     "v0.0.1",
			Writer:      &buf,
		})
		require.NoError(t, err)

		_, span := otel.Tracer("test").Start(ctx, "ledger.test_span")
		span.End()

		counter, err := otel.Meter("test").Int64Counter("test.counter")
		require.NoError(t, err)
		counter.Add(ctx, 3)

		require.NoError(t, shutdown(ctx))
		out := buf.String()
		require.Contains(t, out, "ledger.test_span")
		require.Contains(t, out, "test.counter")
		require.Contains(t, out, "ledger-test")
	})

	t.Run("otlp exporters are created lazily", func(t *testing.T) {
		for _, exporter := range []string{config.ExporterOTLPGRPC, config.ExporterOTLPHTTP} {
			t.Run(exporter, func(t *testing.T) {
				restoreGlobals(t)
				t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://127.0.0.1:1")

				shutdown, err := Setup(ctx, Settings{Exporter: exporter, ServiceName: "test"})
				require.NoError(t, err)

				sctx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
				defer cancel()
				// Nothing listens on the endpoint; only check that shutdown returns.
				_ = shutdown(sctx)
			})
		}
	})

	t.Run("rejects unknown exporter", func(t *testing.T) {
		restoreGlobals(t)
		_, err := Setup(ctx, Settings{Exporter: "zipkin"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "zipkin")
	})
}
