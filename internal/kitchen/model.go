package kitchen

// Priority tiers for a prep item.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// VariantQuantity is the normalized reading of one variant label.
// At most one of the two fields is non-zero.
type VariantQuantity struct {
	WeightGrams int
	Pieces      int
}

// VariantAggregate accumulates one variant label within a product.
type VariantAggregate struct {
	Variant  string `json:"variant" msgpack:"variant"`
	Quantity int    `json:"quantity" msgpack:"quantity"`
	Weight   int    `json:"weight" msgpack:"weight"`
	Pieces   int    `json:"pieces" msgpack:"pieces"`
}

// PrepItem is one product line of the kitchen prep list.
type PrepItem struct {
	Name              string             `json:"name" msgpack:"name"`
	TotalQuantity     int                `json:"totalQuantity" msgpack:"totalQuantity"`
	TotalWeight       int                `json:"totalWeight" msgpack:"totalWeight"`
	TotalPieces       int                `json:"totalPieces" msgpack:"totalPieces"`
	OrderCount        int                `json:"orderCount" msgpack:"orderCount"`
	Variants          []VariantAggregate `json:"variants" msgpack:"variants"`
	Priority          string             `json:"priority" msgpack:"priority"`
	EstimatedPrepTime int                `json:"estimatedPrepTime" msgpack:"estimatedPrepTime"`
}
