// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

package tracing

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Option customizes a Manager.
type Option func(*Manager)

// WithSpanExporter replaces the configured exporter, e.g. with an in-memory exporter in tests.
func WithSpanExporter(exporter sdktrace.SpanExporter) Option {
	return func(m *Manager) {
		m.exporter = exporter
	}
}

// WithConsoleWriter redirects the console exporter output.
func WithConsoleWriter(w io.Writer) Option {
	return func(m *Manager) {
		m.consoleWriter = w
	}
}

// Manager owns the tracer provider and the propagator used by the HTTP middleware.
// A zero or disabled Manager hands out no-op spans.
type Manager struct {
	provider      *sdktrace.TracerProvider
	tracer        trace.Tracer
	propagator    propagation.TextMapPropagator
	exporter      sdktrace.SpanExporter
	consoleWriter io.Writer
}

// NewManager creates a tracing manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize sets up the tracer provider for config. When tracing is disabled
// the manager keeps a no-op tracer and installs nothing globally.
func (m *Manager) Initialize(ctx context.Context, config *Config) error {
	if config == nil {
		return fmt.Errorf("tracing config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid tracing config: %w", err)
	}

	m.propagator = propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	if !config.Enabled {
		m.tracer = noop.NewTracerProvider().Tracer(config.ServiceName)
		return nil
	}

	// Schemaless so the merge never conflicts with the SDK default schema URL.
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(semconv.ServiceName(config.ServiceName)),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporter := m.exporter
	if exporter == nil {
		exporter, err = NewSpanExporter(ctx, config.Exporter, m.consoleWriter)
		if err != nil {
			return fmt.Errorf("failed to create exporter: %w", err)
		}
	}

	var processor sdktrace.SpanProcessor
	if config.Exporter.Type == "console" || m.exporter != nil {
		processor = sdktrace.NewSimpleSpanProcessor(exporter)
	} else {
		processor = sdktrace.NewBatchSpanProcessor(exporter)
	}

	m.provider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(processor),
		sdktrace.WithSampler(newSampler(config.Sampling)),
	)
	m.tracer = m.provider.Tracer(config.ServiceName)

	otel.SetTracerProvider(m.provider)
	otel.SetTextMapPropagator(m.propagator)
	return nil
}

func newSampler(config SamplingConfig) sdktrace.Sampler {
	switch config.Type {
	case "always_off":
		return sdktrace.NeverSample()
	case "traceidratio":
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(config.Rate))
	default:
		return sdktrace.AlwaysSample()
	}
}

// StartSpan starts a span named operationName.
func (m *Manager) StartSpan(ctx context.Context, operationName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if m == nil || m.tracer == nil {
		return noop.NewTracerProvider().Tracer("").Start(ctx, operationName, opts...)
	}
	return m.tracer.Start(ctx, operationName, opts...)
}

// ExtractHTTPHeaders returns ctx carrying the remote span context found in headers.
func (m *Manager) ExtractHTTPHeaders(ctx context.Context, headers http.Header) context.Context {
	if m == nil || m.propagator == nil {
		return ctx
	}
	return m.propagator.Extract(ctx, propagation.HeaderCarrier(headers))
}

// InjectHTTPHeaders writes the span context in ctx into headers.
func (m *Manager) InjectHTTPHeaders(ctx context.Context, headers http.Header) {
	if m == nil || m.propagator == nil {
		return
	}
	m.propagator.Inject(ctx, propagation.HeaderCarrier(headers))
}

// Shutdown flushes and stops the tracer provider.
func (m *Manager) Shutdown(ctx context.Context) error {
	if m == nil || m.provider == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
