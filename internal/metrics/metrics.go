package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	// kitchen
	PrepAggregations prometheus.Counter
	PrepLatencySec   prometheus.Histogram
	PrepOrders       prometheus.Histogram
	PrepExports      *prometheus.CounterVec

	// orders
	OrdersPlaced        prometheus.Counter
	OrderStatusChanges  *prometheus.CounterVec
	EventsPublished     prometheus.Counter
	EventPublishFailure prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	prepAggregations := prometheus.NewCounter(prometheus.CounterOpts{Name: "kitchen_prep_aggregations_total"})
	prepLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kitchen_prep_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})
	prepOrders := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kitchen_prep_orders",
		Buckets: []float64{0, 10, 50, 100, 250, 500},
	})
	prepExports := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "kitchen_prep_exports_total"},
		[]string{"format"},
	)

	placed := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_placed_total"})
	statusChanges := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orders_status_changes_total"},
		[]string{"status"},
	)
	published := prometheus.NewCounter(prometheus.CounterOpts{Name: "order_events_published_total"})
	publishFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "order_events_failed_total"})

	r.MustRegister(prepAggregations, prepLatency, prepOrders, prepExports, placed, statusChanges, published, publishFailed)
	return &Registry{
		reg:                 r,
		PrepAggregations:    prepAggregations,
		PrepLatencySec:      prepLatency,
		PrepOrders:          prepOrders,
		PrepExports:         prepExports,
		OrdersPlaced:        placed,
		OrderStatusChanges:  statusChanges,
		EventsPublished:     published,
		EventPublishFailure: publishFailed,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
