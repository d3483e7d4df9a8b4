package mirror

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the engine's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "svgmirror").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the engine's Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "svgmirror",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors an Engine reports to.
// A nil *Metrics records nothing.
//
// Metrics collected:
//   - svgmirror_replicated_elements_total: elements replicated
//   - svgmirror_mutations_total: mutation records dispatched, by kind
//   - svgmirror_invariant_violations_total: records for unpaired elements
//   - svgmirror_associations: live authoring/presentation pairs
//   - svgmirror_watchers: connected watchers
//   - svgmirror_dispatch_duration_seconds: time spent per dispatch batch
//   - svgmirror_patches_total: presentation patches emitted
type Metrics struct {
	replicated       prometheus.Counter
	mutations        *prometheus.CounterVec
	violations       prometheus.Counter
	associations     prometheus.Gauge
	watchers         prometheus.Gauge
	dispatchDuration prometheus.Histogram
	patches          prometheus.Counter
}

// NewMetrics creates and registers the engine metrics. Registering twice
// with the same registry panics, as with any promauto collector.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		replicated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "replicated_elements_total",
			Help:        "Total number of authoring elements replicated",
			ConstLabels: config.ConstLabels,
		}),

		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mutations_total",
			Help:        "Total number of mutation records dispatched",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		violations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "invariant_violations_total",
			Help:        "Total number of mutation records for elements without a pair",
			ConstLabels: config.ConstLabels,
		}),

		associations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "associations",
			Help:        "Number of live authoring/presentation pairs",
			ConstLabels: config.ConstLabels,
		}),

		watchers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "watchers",
			Help:        "Number of connected watchers",
			ConstLabels: config.ConstLabels,
		}),

		dispatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_duration_seconds",
			Help:        "Dispatch batch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		patches: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_total",
			Help:        "Total number of presentation patches emitted",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) recordReplicated() {
	if m != nil {
		m.replicated.Inc()
	}
}

func (m *Metrics) recordMutation(kind string) {
	if m != nil {
		m.mutations.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) recordViolation() {
	if m != nil {
		m.violations.Inc()
	}
}

func (m *Metrics) setAssociations(n int) {
	if m != nil {
		m.associations.Set(float64(n))
	}
}

func (m *Metrics) setWatchers(n int) {
	if m != nil {
		m.watchers.Set(float64(n))
	}
}

func (m *Metrics) observeDispatch(start time.Time) {
	if m != nil {
		m.dispatchDuration.Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) recordPatches(n int) {
	if m != nil && n > 0 {
		m.patches.Add(float64(n))
	}
}
