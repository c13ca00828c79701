package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the storefront's Prometheus collectors.
type Metrics struct {
	CartMutations       *prometheus.CounterVec
	Checkouts           prometheus.Counter
	BookingsCreated     *prometheus.CounterVec
	BookingRejections   *prometheus.CounterVec
	StorageWriteErrors  *prometheus.CounterVec
	CatalogLoadDuration prometheus.Histogram
	CatalogLoadFailures prometheus.Counter
	ActiveSessions      prometheus.Gauge
}

// New creates and registers all storefront metrics on reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CartMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "mutations_total",
			Help:      "Total number of cart mutations by operation",
		}, []string{"operation"}),
		Checkouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "checkouts_total",
			Help:      "Total number of simulated checkouts of non-empty carts",
		}),
		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Total number of bookings created by service",
		}, []string{"service"}),
		BookingRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "rejected_total",
			Help:      "Total number of booking submissions rejected by reason",
		}, []string{"reason"}),
		StorageWriteErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "write_errors_total",
			Help:      "Total number of failed write-through persistence attempts",
		}, []string{"key"}),
		CatalogLoadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "load_duration_seconds",
			Help:      "Time spent loading the product and service datasets",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		CatalogLoadFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "load_failures_total",
			Help:      "Total number of failed catalog loads",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Current number of sessions held in memory",
		}),
	}
}
