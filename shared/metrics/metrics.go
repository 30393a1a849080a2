// Package metrics registers the Prometheus collectors for the order
// admission and fulfillment pipeline and serves them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles every collector the pipeline touches. It is constructed
// once in the DI container and threaded through the components that emit
// each series, never referenced through a package-level global.
type Metrics struct {
	RateLimitRejections prometheus.Counter
	QueueOverflow       prometheus.Counter
	QueueDepth          prometheus.Gauge
	HTTPRequestDuration *prometheus.HistogramVec
	PoolActiveConns     prometheus.Gauge
	PoolIdleConns       prometheus.Gauge
}

// New registers every collector against its own registry so repeated
// construction in tests never panics on duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RateLimitRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Total admission requests rejected by the per-user rate limiter.",
		}),
		QueueOverflow: factory.NewCounter(prometheus.CounterOpts{
			Name: "order_queue_overflow_total",
			Help: "Total admission requests rejected because the bounded queue was full.",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "order_queue_depth",
			Help: "Current number of items resident in the bounded order queue.",
		}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_requests_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		PoolActiveConns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pool_active_connections",
			Help: "Database connections currently in use.",
		}),
		PoolIdleConns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pool_idle_connections",
			Help: "Database connections currently idle in the pool.",
		}),
	}
}
