// Package telemetry wires logging and metrics for the binaries.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"dotdestroyer/game"
)

// SetupLogging sets the global level and returns a console logger writing
// to out
func SetupLogging(level zerolog.Level, out io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(level)
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

// ShutdownFunc flushes and stops a metrics provider
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// SetupMetrics installs a global meter provider that periodically dumps
// metrics to out. With stdout metrics disabled the global no-op meter stays
// in place.
func SetupMetrics(cfg game.MetricsConfig, out io.Writer) (ShutdownFunc, error) {
	if !cfg.Stdout {
		return noopShutdown, nil
	}

	exporter, err := stdoutmetric.New(
		stdoutmetric.WithWriter(out),
		stdoutmetric.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stdout metric exporter: %w", err)
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}
