// Package telemetry turns OpenTelemetry spans of watch operations into log lines.
package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/vfswatch/internal/core/ports"
)

// SpanPrefix selects the spans reported by TimingLogger.
const SpanPrefix = "vfswatch."

var _ sdktrace.SpanProcessor = (*TimingLogger)(nil)

// TimingLogger implements sdktrace.SpanProcessor, logging how long each watch
// operation took once its span ends.
type TimingLogger struct {
	logger ports.Logger
}

// NewTimingLogger returns a new TimingLogger.
func NewTimingLogger(logger ports.Logger) *TimingLogger {
	return &TimingLogger{logger: logger}
}

// OnStart does nothing.
func (t *TimingLogger) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the duration of a finished watch span.
func (t *TimingLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	if t.logger == nil || !s.SpanContext().IsValid() || !strings.HasPrefix(s.Name(), SpanPrefix) {
		return
	}

	name := strings.TrimPrefix(s.Name(), SpanPrefix)
	millis := s.EndTime().Sub(s.StartTime()).Milliseconds()

	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "operation failed"
		}
		t.logger.Warn(fmt.Sprintf("%s failed after %dms: %s", name, millis, desc))
		return
	}
	t.logger.Info(fmt.Sprintf("%s took %dms", name, millis))
}

// ForceFlush does nothing.
func (t *TimingLogger) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (t *TimingLogger) Shutdown(_ context.Context) error {
	return nil
}

// NewProvider returns a tracer provider reporting watch span timings to logger.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewTimingLogger(logger)),
	)
}
