package quorum

import (
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Option configures a single Run call.
type Option func(*options)

type options struct {
	drift  time.Duration
	tracer trace.Tracer
}

var noopTracer = noop.NewTracerProvider().Tracer("quorum")

func defaultOptions() *options {
	return &options{drift: defaultDrift, tracer: noopTracer}
}

// WithDrift overrides the fixed drift term added to the 1%-of-timeout
// clock-drift allowance. A non-positive value is ignored.
func WithDrift(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.drift = d
		}
	}
}

// WithTracer attaches an OpenTelemetry tracer; Run opens one span per
// backend task, named after the backend's index. A nil tracer is ignored
// and Run stays a no-op tracer-wise.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}
