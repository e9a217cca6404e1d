package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// DefaultBuckets suit position computations, which take microseconds.
var DefaultBuckets = []float64{.00001, .00005, .0001, .00025, .0005, .001, .0025, .005, .01}

// MetricsConfig configures Metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "tooltip").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for position duration.
	// Default: DefaultBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures Metrics.
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
		Namespace: "tooltip",
		Buckets:   DefaultBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the tooltip collectors. Create one per registry.
type Metrics struct {
	notificationsTotal *prometheus.CounterVec
	positionErrors     prometheus.Counter
	positionDuration   prometheus.Histogram
	trackingActive     prometheus.Gauge
}

// NewMetrics creates and registers the collectors. When the registry
// already holds identical collectors, for example from an earlier call on
// prometheus.DefaultRegisterer, those are reused and the two Metrics share
// their series.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	reg := config.Registry

	return &Metrics{
		notificationsTotal: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Total number of tooltip show and hide notifications",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"})),

		positionErrors: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "position_errors_total",
			Help:        "Total number of failed position computations",
			ConstLabels: config.ConstLabels,
		})),

		positionDuration: register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "position_duration_seconds",
			Help:        "Position computation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		})),

		trackingActive: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tracking_active",
			Help:        "Number of live position tracking subscriptions",
			ConstLabels: config.ConstLabels,
		})),
	}
}

// register adds c to reg and returns it, or returns the collector reg
// already holds under the same descriptor. Other registration errors
// panic.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// Solver wraps s so every computation is timed and failures counted.
func (m *Metrics) Solver(s geometry.Solver) geometry.Solver {
	return geometry.SolverFunc(func(ctx context.Context, req geometry.Request) (geometry.Result, error) {
		start := time.Now()
		res, err := s.Compute(ctx, req)
		m.positionDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			m.positionErrors.Inc()
		}
		return res, err
	})
}

// AutoUpdater wraps a so live subscriptions are reflected in the gauge.
func (m *Metrics) AutoUpdater(a tooltip.AutoUpdater) tooltip.AutoUpdater {
	return tooltip.AutoUpdaterFunc(func(trigger, floating tooltip.Element, onChange func()) tooltip.Cleanup {
		stop := a.AutoUpdate(trigger, floating, onChange)
		m.trackingActive.Inc()
		done := false
		return func() {
			if done {
				return
			}
			done = true
			m.trackingActive.Dec()
			if stop != nil {
				stop()
			}
		}
	})
}

// Observe counts c's notifications until the returned Cleanup runs.
func (m *Metrics) Observe(c *tooltip.Controller) tooltip.Cleanup {
	return c.OnNotify(func(n tooltip.Notification) {
		m.notificationsTotal.WithLabelValues(n.String()).Inc()
	})
}
