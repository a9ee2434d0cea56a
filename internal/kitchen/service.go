package kitchen

import (
	"context"
	"io"
	"log"
	"time"

	"gokhale/internal/core"
	"gokhale/internal/metrics"
	"gokhale/internal/orders"
)

// Storage is the object store the prep sheet is exported to.
type Storage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	orders  core.OrderReader
	storage Storage
	metrics *metrics.Registry
	now     func() time.Time
}

// NewService wires the kitchen service. storage may be nil, which disables
// export.
func NewService(orders core.OrderReader, storage Storage, m *metrics.Registry) *Service {
	if m == nil {
		m = metrics.NewRegistry()
	}
	return &Service{
		orders:  orders,
		storage: storage,
		metrics: m,
		now:     time.Now,
	}
}

// --------------------------------------------------
// Prep list (READ ONLY)
// --------------------------------------------------
func (s *Service) PrepList(ctx context.Context, statuses []string) ([]PrepItem, error) {
	if len(statuses) == 0 {
		statuses = orders.DefaultKitchenStatuses
	}

	start := s.now()

	snapshot, err := s.orders.List(ctx, orders.ListFilter{
		Statuses: statuses,
		Limit:    MaxPrepOrders,
	})
	if err != nil {
		return nil, err
	}

	items := Aggregate(snapshot, statuses)

	s.metrics.PrepAggregations.Inc()
	s.metrics.PrepOrders.Observe(float64(len(snapshot)))
	s.metrics.PrepLatencySec.Observe(s.now().Sub(start).Seconds())

	log.Printf(
		"[KITCHEN] statuses=%v orders=%d products=%d",
		statuses, len(snapshot), len(items),
	)

	return items, nil
}
