// pkg/secret_io/context.go

package secret_io

import (
	"context"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/secret_err"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RuntimeContext carries everything a command needs for one invocation.
type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Timestamp  time.Time
	Span       trace.Span
	Command    string
	Attributes map[string]string

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// NewContext opens the command span and a logger scoped to it.
func NewContext(ctx context.Context, cmdName string) *RuntimeContext {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := telemetry.Start(ctx, cmdName, attribute.String("command", cmdName))

	traceID := logger.GenerateTraceID()
	if sc := span.SpanContext(); sc.HasTraceID() {
		traceID = sc.TraceID().String()
	}

	log := logger.L().With(
		zap.String("command", cmdName),
		zap.String("trace_id", traceID),
	).Named(cmdName)

	return &RuntimeContext{
		Ctx:        ctx,
		Log:        log,
		Timestamp:  time.Now(),
		Span:       span,
		Command:    cmdName,
		Attributes: make(map[string]string),
		In:         os.Stdin,
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("Panic recovered", zap.Any("panic", r))
	}
}

// End records the outcome on the command span and closes it. Outcome
// logging belongs to logger.LogCommandLifecycle.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.Span.End()

	var err error
	if errPtr != nil {
		err = *errPtr
	}
	duration := time.Since(rc.Timestamp)
	success := err == nil

	attrs := []attribute.KeyValue{
		attribute.String("command", rc.Command),
		attribute.Bool("success", success),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("error_type", classifyError(err)),
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)

	if !success {
		rc.Span.RecordError(err)
		rc.Span.SetStatus(codes.Error, err.Error())
	}
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if secret_err.IsExpectedUserError(err) {
		return "user"
	}
	var classified *secret_err.ClassifiedError
	if cerr.As(err, &classified) {
		return classified.Category.String()
	}
	return "system"
}
