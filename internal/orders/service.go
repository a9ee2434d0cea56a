package orders

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gokhale/internal/events"
	"gokhale/internal/metrics"

	"github.com/shopspring/decimal"
)

// AdminListLimit caps the admin order table.
const AdminListLimit = 500

var (
	ErrMissingFields = errors.New("missing order fields")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrCannotCancel  = errors.New("order can no longer be cancelled")

	ErrInvalidQuantity = errors.New("item quantity out of range")
)

// MaxLineQuantity caps units per order line.
const MaxLineQuantity = 1000

type Service struct {
	repo      Repository
	publisher events.Publisher
	metrics   *metrics.Registry
}

func NewService(repo Repository, publisher events.Publisher, m *metrics.Registry) *Service {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	if m == nil {
		m = metrics.NewRegistry()
	}
	return &Service{repo: repo, publisher: publisher, metrics: m}
}

// PlaceOrderInput is what the storefront submits after checkout.
type PlaceOrderInput struct {
	UserID           string
	FirstName        string
	MobileNumber     string
	DeliveryDate     *time.Time
	Address          Address
	Items            []LineItem
	TotalAmount      decimal.Decimal
	PaymentReference string
}

// --------------------------------------------------
// Place order (customer)
// --------------------------------------------------
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*Order, error) {
	if in.UserID == "" || len(in.Items) == 0 || strings.TrimSpace(in.Address.Line1) == "" {
		return nil, ErrMissingFields
	}

	if !in.TotalAmount.IsPositive() {
		return nil, ErrMissingFields
	}

	for _, item := range in.Items {
		if strings.TrimSpace(item.Name) == "" || item.Quantity <= 0 {
			return nil, ErrMissingFields
		}
		if item.Quantity > MaxLineQuantity {
			return nil, ErrInvalidQuantity
		}
	}

	order := &Order{
		UserID:           in.UserID,
		FirstName:        in.FirstName,
		MobileNumber:     in.MobileNumber,
		DeliveryDate:     in.DeliveryDate,
		Address:          in.Address,
		Items:            in.Items,
		TotalAmount:      in.TotalAmount,
		Status:           StatusPlaced,
		PaymentReference: in.PaymentReference,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.metrics.OrdersPlaced.Inc()
	s.publish(ctx, events.OrderEvent{
		Type:    events.OrderPlaced,
		OrderID: order.ID,
		Status:  order.Status,
		UserID:  order.UserID,
	})

	return order, nil
}

// --------------------------------------------------
// Customer order history
// --------------------------------------------------
func (s *Service) ListMyOrders(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.List(ctx, ListFilter{UserID: userID, NewestFirst: true})
}

// --------------------------------------------------
// Admin order table
// --------------------------------------------------
func (s *Service) ListForAdmin(ctx context.Context) ([]*Order, error) {
	return s.repo.List(ctx, ListFilter{
		Statuses:    AllowedStatuses,
		Limit:       AdminListLimit,
		NewestFirst: true,
	})
}

// --------------------------------------------------
// Admin status change
// --------------------------------------------------
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status string) (*Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsAllowedStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.metrics.OrderStatusChanges.WithLabelValues(status).Inc()
	s.publish(ctx, events.OrderEvent{
		Type:           events.OrderStatusChanged,
		OrderID:        order.ID,
		Status:         status,
		PreviousStatus: previous,
		UserID:         order.UserID,
	})

	return order, nil
}

// --------------------------------------------------
// Customer cancel (own order, placed/confirmed only)
// --------------------------------------------------
func (s *Service) Cancel(ctx context.Context, orderID int64, userID string) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	// other users' orders are reported as missing
	if order.UserID != userID {
		return ErrOrderNotFound
	}

	if !cancellable[order.Status] {
		return ErrCannotCancel
	}

	if err := s.repo.UpdateStatus(ctx, orderID, StatusCancelled); err != nil {
		return err
	}

	s.metrics.OrderStatusChanges.WithLabelValues(StatusCancelled).Inc()
	s.publish(ctx, events.OrderEvent{
		Type:           events.OrderCancelled,
		OrderID:        order.ID,
		Status:         StatusCancelled,
		PreviousStatus: order.Status,
		UserID:         userID,
	})

	return nil
}

// publish never fails the caller: the order is already persisted.
func (s *Service) publish(ctx context.Context, e events.OrderEvent) {
	e.TS = time.Now().Unix()
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.metrics.EventPublishFailure.Inc()
		log.Printf("[ORDERS] event publish failed type=%s order=%d: %v", e.Type, e.OrderID, err)
		return
	}
	s.metrics.EventsPublished.Inc()
}
