package dashboard

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"gokhale/internal/core"
	"gokhale/internal/orders"

	"github.com/shopspring/decimal"
)

type Service struct {
	orders core.OrderReader
	now    func() time.Time
}

func NewService(orders core.OrderReader) *Service {
	return &Service{orders: orders, now: time.Now}
}

// NormalizePeriod maps anything unknown to monthly.
func NormalizePeriod(period string) string {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case PeriodWeekly:
		return PeriodWeekly
	case PeriodYearly:
		return PeriodYearly
	default:
		return PeriodMonthly
	}
}

func windowFor(period string) time.Duration {
	switch period {
	case PeriodWeekly:
		return 7 * 24 * time.Hour
	case PeriodYearly:
		return 365 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

func labelLayout(period string) string {
	switch period {
	case PeriodWeekly:
		return "2006-01-02"
	case PeriodYearly:
		return "2006"
	default:
		return "2006-01"
	}
}

// --------------------------------------------------
// Summary
// --------------------------------------------------
func (s *Service) Summary(ctx context.Context, period string) (*Summary, error) {
	period = NormalizePeriod(period)
	since := s.now().UTC().Add(-windowFor(period))

	list, err := s.orders.List(ctx, orders.ListFilter{
		Statuses: orders.AllowedStatuses,
		Since:    since,
	})
	if err != nil {
		return nil, err
	}

	out := &Summary{Period: period, TotalRevenue: decimal.Zero}
	customers := make(map[string]struct{})

	for _, o := range list {
		out.TotalRevenue = out.TotalRevenue.Add(o.TotalAmount)
		out.TotalOrders++
		if o.MobileNumber != "" {
			customers[o.MobileNumber] = struct{}{}
		}
	}
	out.TotalCustomers = len(customers)

	log.Printf("[DASHBOARD] summary period=%s orders=%d", period, out.TotalOrders)
	return out, nil
}

// --------------------------------------------------
// Revenue grouped by day / month / year
// --------------------------------------------------
func (s *Service) Revenue(ctx context.Context, period string) ([]RevenuePoint, error) {
	period = NormalizePeriod(period)
	layout := labelLayout(period)

	list, err := s.orders.List(ctx, orders.ListFilter{Statuses: orders.AllowedStatuses})
	if err != nil {
		return nil, err
	}

	byLabel := make(map[string]decimal.Decimal)
	for _, o := range list {
		label := o.CreatedAt.UTC().Format(layout)
		byLabel[label] = byLabel[label].Add(o.TotalAmount)
	}

	points := make([]RevenuePoint, 0, len(byLabel))
	for label, revenue := range byLabel {
		points = append(points, RevenuePoint{Name: label, Revenue: revenue})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Name < points[j].Name })

	return points, nil
}

// --------------------------------------------------
// Top products by units sold
// --------------------------------------------------
func (s *Service) TopProducts(ctx context.Context) ([]ProductSales, error) {
	list, err := s.orders.List(ctx, orders.ListFilter{Statuses: orders.AllowedStatuses})
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var products []ProductSales

	for _, o := range list {
		for _, item := range o.Items {
			if item.Name == "" {
				continue
			}
			i, ok := index[item.Name]
			if !ok {
				i = len(products)
				index[item.Name] = i
				products = append(products, ProductSales{Name: item.Name, Revenue: decimal.Zero})
			}
			p := &products[i]
			p.Sales += item.Quantity
			p.Revenue = p.Revenue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	sort.SliceStable(products, func(i, j int) bool { return products[i].Sales > products[j].Sales })

	if len(products) > TopProductsLimit {
		products = products[:TopProductsLimit]
	}
	if products == nil {
		products = []ProductSales{}
	}
	return products, nil
}
