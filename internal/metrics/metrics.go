package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RecipesCreated     prometheus.Counter
	RecipesUpdated     prometheus.Counter
	RecipesDeleted     prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	RecipesStored      prometheus.Gauge
	StatsRecomputed    prometheus.Counter
	StatsDuration      prometheus.Histogram
}

// New creates the metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecipesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "recipebox_recipes_created_total",
			Help: "Total number of recipes created",
		}),
		RecipesUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "recipebox_recipes_updated_total",
			Help: "Total number of recipes updated",
		}),
		RecipesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "recipebox_recipes_deleted_total",
			Help: "Total number of recipes deleted",
		}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recipebox_validation_failures_total",
			Help: "Rejected create and edit submissions by operation",
		}, []string{"operation"}),
		RecipesStored: factory.NewGauge(prometheus.GaugeOpts{
			Name: "recipebox_recipes_stored",
			Help: "Number of recipes currently in the store",
		}),
		StatsRecomputed: factory.NewCounter(prometheus.CounterOpts{
			Name: "recipebox_stats_recomputed_total",
			Help: "Number of published statistics recomputations",
		}),
		StatsDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "recipebox_stats_recompute_seconds",
			Help:    "Time spent computing statistics",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}

// IncrementCreated increments the created counter by 1
func (m *Metrics) IncrementCreated() {
	m.RecipesCreated.Inc()
}

// IncrementUpdated increments the updated counter by 1
func (m *Metrics) IncrementUpdated() {
	m.RecipesUpdated.Inc()
}

// IncrementDeleted increments the deleted counter by 1
func (m *Metrics) IncrementDeleted() {
	m.RecipesDeleted.Inc()
}

// IncrementValidationFailure counts a rejected submission for operation
func (m *Metrics) IncrementValidationFailure(operation string) {
	m.ValidationFailures.WithLabelValues(operation).Inc()
}

// SetStored records the current collection size
func (m *Metrics) SetStored(n int) {
	m.RecipesStored.Set(float64(n))
}

// ObserveRecomputation implements stats.Observer
func (m *Metrics) ObserveRecomputation(d time.Duration) {
	m.StatsRecomputed.Inc()
	m.StatsDuration.Observe(d.Seconds())
}
