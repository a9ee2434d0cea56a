package dashboard

import "github.com/shopspring/decimal"

const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// TopProductsLimit caps the best-seller list.
const TopProductsLimit = 5

type Summary struct {
	Period         string          `json:"period"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalOrders    int             `json:"total_orders"`
	TotalCustomers int             `json:"total_customers"`
}

type RevenuePoint struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ProductSales struct {
	Name    string          `json:"name"`
	Sales   int             `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}
