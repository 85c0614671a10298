package app

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/margo/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/margo/internal/core/ports"
)

const tracerName = "margo"

// newTracer creates a tracer whose crate spans are forwarded to the renderer.
// The returned function flushes and releases the provider.
func (a *App) newTracer() (ports.Tracer, func()) {
	if a.renderer == nil {
		return telemetry.NewNoOpTracer(), func() {}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(telemetry.NewBridge(a.renderer)),
	)
	tracer := telemetry.NewOTelTracer(tracerName, telemetry.WithTracerProvider(tp)).WithRenderer(a.renderer)

	return tracer, func() {
		_ = tp.Shutdown(context.Background())
	}
}
