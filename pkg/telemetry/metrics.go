package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/CodeMonkeyCybersecurity/secret"

type counters struct {
	checks    metric.Int64Counter
	generated metric.Int64Counter
}

// Guarded by mu. Replaced whenever a MeterProvider is installed.
var instruments = newCounters(metricnoop.NewMeterProvider())

func newCounters(mp metric.MeterProvider) counters {
	meter := mp.Meter(meterName)

	c := counters{}
	var err error
	if c.checks, err = meter.Int64Counter("secret.checks",
		metric.WithDescription("Passwords rated, by strength")); err != nil {
		otel.Handle(err)
		c.checks = metricnoop.Int64Counter{}
	}
	if c.generated, err = meter.Int64Counter("secret.generated",
		metric.WithDescription("Passwords generated, by format")); err != nil {
		otel.Handle(err)
		c.generated = metricnoop.Int64Counter{}
	}
	return c
}

// setMeterProvider installs mp globally and rebinds the counters. Callers
// hold mu.
func setMeterProvider(mp metric.MeterProvider) {
	otel.SetMeterProvider(mp)
	instruments = newCounters(mp)
}

// UseMeterProvider installs an externally built MeterProvider, e.g. a
// manual reader in tests.
func UseMeterProvider(mp metric.MeterProvider) {
	mu.Lock()
	defer mu.Unlock()
	setMeterProvider(mp)
}

func current() counters {
	mu.RLock()
	defer mu.RUnlock()
	return instruments
}

// RecordCheck counts one rated password.
func RecordCheck(ctx context.Context, strength string) {
	current().checks.Add(ctx, 1, metric.WithAttributes(attribute.String("strength", strength)))
}

// RecordGenerated counts n generated passwords of the given format.
func RecordGenerated(ctx context.Context, n int, format string) {
	current().generated.Add(ctx, int64(n), metric.WithAttributes(attribute.String("format", format)))
}
