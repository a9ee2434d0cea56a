package core

import (
	"context"

	"gokhale/internal/orders"
)

// OrderReader is the read side of the order store shared by the kitchen
// and dashboard services.
type OrderReader interface {
	List(ctx context.Context, filter orders.ListFilter) ([]*orders.Order, error)
}
