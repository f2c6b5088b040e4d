package toast

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts toasts as they move through the flash lifecycle.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	flashedTotal   *prometheus.CounterVec
	deliveredTotal prometheus.Counter
	keptTotal      prometheus.Counter
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*metricsConfig)

type metricsConfig struct {
	namespace   string
	subsystem   string
	constLabels prometheus.Labels
}

// WithNamespace sets the metrics namespace (default "flashtoast").
func WithNamespace(namespace string) MetricsOption {
	return func(c *metricsConfig) {
		c.namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *metricsConfig) {
		c.subsystem = subsystem
	}
}

// WithConstLabels adds constant labels to all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *metricsConfig) {
		c.constLabels = labels
	}
}

// NewMetrics registers the toast counters on reg.
// Registering twice on the same registry panics, as promauto does.
func NewMetrics(reg prometheus.Registerer, opts ...MetricsOption) *Metrics {
	cfg := metricsConfig{namespace: "flashtoast"}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(reg)

	return &Metrics{
		flashedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Subsystem:   cfg.subsystem,
			Name:        "flashed_total",
			Help:        "Total number of toasts merged into session storage",
			ConstLabels: cfg.constLabels,
		}, []string{"level"}),

		deliveredTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Subsystem:   cfg.subsystem,
			Name:        "delivered_total",
			Help:        "Total number of toasts shared with a rendered page",
			ConstLabels: cfg.constLabels,
		}),

		keptTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Subsystem:   cfg.subsystem,
			Name:        "kept_total",
			Help:        "Total number of redirect responses that kept flashed toasts alive",
			ConstLabels: cfg.constLabels,
		}),
	}
}

func (m *Metrics) flashed(level Level) {
	if m == nil {
		return
	}
	m.flashedTotal.WithLabelValues(level.String()).Inc()
}

func (m *Metrics) delivered(n int) {
	if m == nil {
		return
	}
	m.deliveredTotal.Add(float64(n))
}

func (m *Metrics) kept() {
	if m == nil {
		return
	}
	m.keptTotal.Inc()
}
