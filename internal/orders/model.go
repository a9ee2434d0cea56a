package orders

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle states.
const (
	StatusPlaced     = "placed"
	StatusConfirmed  = "confirmed"
	StatusInProcess  = "inprocess"
	StatusDispatched = "dispatched"
	StatusDelivered  = "delivered"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusRejected   = "rejected"
)

// AllowedStatuses is the full set an admin may move an order into.
var AllowedStatuses = []string{
	StatusPlaced,
	StatusConfirmed,
	StatusInProcess,
	StatusDispatched,
	StatusDelivered,
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
}

// DefaultKitchenStatuses are the orders the kitchen is actively preparing.
var DefaultKitchenStatuses = []string{StatusConfirmed, StatusInProcess}

// cancellable statuses (customer side)
var cancellable = map[string]bool{
	StatusPlaced:    true,
	StatusConfirmed: true,
}

func IsAllowedStatus(status string) bool {
	for _, s := range AllowedStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseStatuses splits a comma separated status query ("confirmed,inprocess").
// Blank entries are dropped; an empty result means "use the caller default".
func ParseStatuses(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		s := strings.ToLower(strings.TrimSpace(part))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

type Address struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// LineItem is one product line of an order as the storefront submits it.
// Price is only used by revenue reports, never by kitchen prep.
type LineItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Variant  string          `json:"variant"`
	Price    decimal.Decimal `json:"price"`
}

type Order struct {
	ID               int64           `json:"id"`
	UserID           string          `json:"user_id"`
	FirstName        string          `json:"first_name"`
	MobileNumber     string          `json:"mobile_number"`
	DeliveryDate     *time.Time      `json:"delivery_date"`
	Address          Address         `json:"address"`
	Items            []LineItem      `json:"items"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Status           string          `json:"order_status"`
	PaymentReference string          `json:"payment_reference"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ListFilter narrows Repository.List. Zero values mean "no constraint".
type ListFilter struct {
	Statuses    []string
	UserID      string
	Since       time.Time
	Limit       int
	NewestFirst bool
}
