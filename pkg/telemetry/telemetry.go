// pkg/telemetry/telemetry.go
package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config selects whether spans and metrics are recorded and where they are
// written.
type Config struct {
	Enabled bool
	Path    string
}

var (
	mu       sync.RWMutex
	tracer   trace.Tracer = noop.NewTracerProvider().Tracer("secret")
	shutdown              = func(context.Context) error { return nil }
	enabled  bool
)

// Init configures OpenTelemetry; call this once configuration is known.
// When disabled a noop provider is installed and nothing touches disk.
func Init(service string, cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if !cfg.Enabled {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer(service)
		setMeterProvider(metricnoop.NewMeterProvider())
		shutdown = func(context.Context) error { return nil }
		enabled = false
		return nil
	}

	path := cfg.Path
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return cerr.Wrap(err, "failed to create telemetry directory")
	}

	// JSONL, appended across runs
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return cerr.Wrap(err, "failed to open telemetry file")
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		file.Close()
		return cerr.Wrap(err, "failed to create file exporter")
	}

	metricExp, err := stdoutmetric.New(
		stdoutmetric.WithWriter(file),
		stdoutmetric.WithoutTimestamps(),
	)
	if err != nil {
		file.Close()
		return cerr.Wrap(err, "failed to create metric exporter")
	}

	res := sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(service),
		attribute.String("host.name", hostname()),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)

	// Counters are flushed once, by the final collection on shutdown.
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(service)
	setMeterProvider(mp)
	enabled = true
	shutdown = func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if merr := mp.Shutdown(ctx); err == nil {
			err = merr
		}
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		return err
	}
	return nil
}

// UseProvider installs an externally built provider, e.g. an in-memory
// recorder in tests. Shutdown stays the caller's job.
func UseProvider(service string, tp trace.TracerProvider) {
	mu.Lock()
	defer mu.Unlock()

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(service)
	shutdown = func(context.Context) error { return nil }
	enabled = true
}

// Shutdown flushes pending spans and metrics and closes the telemetry file.
// Later calls are no-ops until the next Init.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	fn := shutdown
	shutdown = func(context.Context) error { return nil }
	mu.Unlock()
	return fn(ctx)
}

// IsEnabled reports whether spans are being exported.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	mu.RLock()
	t := tracer
	mu.RUnlock()
	return t.Start(ctx, name, trace.WithAttributes(attrs...))
}

// DefaultPath is where spans go when no path is configured.
func DefaultPath() string {
	return xdg.StatePath("telemetry.jsonl")
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
