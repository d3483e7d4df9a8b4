package mirror

import (
	"log/slog"

	"github.com/vango-dev/svgmirror/pkg/protocol"
	"go.opentelemetry.io/otel/trace"
)

// PatchHandler receives the presentation patches produced by one dispatch
// batch. The slice is not reused after the call returns.
type PatchHandler func(patches []protocol.Patch)

// ErrorHandler receives every invariant violation as it is raised.
type ErrorHandler func(err error)

// options holds the engine configuration.
type options struct {
	logger         *slog.Logger
	metrics        *Metrics
	tracerProvider trace.TracerProvider
	onPatches      PatchHandler
	onError        ErrorHandler

	// cascade tears down the associations and watchers of a removed
	// element's descendants, not only the element's own.
	cascade bool

	// positional inserts added elements before their next paired sibling
	// instead of appending them.
	positional bool
}

// Option configures an Engine.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:     slog.Default(),
		cascade:    true,
		positional: true,
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records engine activity in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracerProvider sets the provider spans are created from. The default
// is the global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithPatchHandler subscribes fn to the presentation change log.
func WithPatchHandler(fn PatchHandler) Option {
	return func(o *options) {
		o.onPatches = fn
	}
}

// WithErrorHandler sets a callback for invariant violations. Violations are
// also logged and returned from Sync.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// WithCascade controls whether removing an element also forgets its
// descendants. Enabled by default.
func WithCascade(enabled bool) Option {
	return func(o *options) {
		o.cascade = enabled
	}
}

// WithPositionalInsert controls whether added elements keep their position
// among siblings. When disabled they are always appended. Enabled by
// default.
func WithPositionalInsert(enabled bool) Option {
	return func(o *options) {
		o.positional = enabled
	}
}
