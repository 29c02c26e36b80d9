package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/modelcache/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor and reports finished spans to a logger.
type Bridge struct {
	logger    ports.Logger
	threshold time.Duration
}

// NewBridge returns a Bridge that logs every span lasting at least threshold.
func NewBridge(logger ports.Logger, threshold time.Duration) *Bridge {
	return &Bridge{logger: logger, threshold: threshold}
}

// NewProvider creates a tracer provider that feeds b.
func NewProvider(b *Bridge) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(b))
}

// OnStart does nothing.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, its subject and duration.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime())
	if elapsed < b.threshold {
		return
	}

	subject := ""
	for _, attr := range s.Attributes() {
		if attr.Key == "model.key" {
			subject = " " + attr.Value.AsString()
			break
		}
	}

	if s.Status().Code == codes.Error {
		b.logger.Warn(fmt.Sprintf("%s%s failed after %s: %s",
			s.Name(), subject, elapsed.Round(time.Millisecond), s.Status().Description))
		return
	}
	b.logger.Info(fmt.Sprintf("%s%s took %s", s.Name(), subject, elapsed.Round(time.Millisecond)))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
