package kitchen

import (
	"math"

	"gokhale/internal/orders"
)

// MaxPrepOrders bounds the work of one aggregation. Callers that need more
// must page.
const MaxPrepOrders = 500

// Aggregate builds the kitchen prep list from an order snapshot.
// PURE business logic (NO db / NO http): the input is never mutated and
// nothing survives the call.
//
// Products and their variants come out in the order they were first seen.
func Aggregate(list []*orders.Order, includeStatuses []string) []PrepItem {
	include := make(map[string]bool, len(includeStatuses))
	for _, s := range includeStatuses {
		include[s] = true
	}

	type variantAcc struct {
		index map[string]int
		list  []VariantAggregate
	}
	type productAcc struct {
		item     PrepItem
		orderIDs map[int64]struct{}
		variants variantAcc
	}

	productIndex := make(map[string]int)
	var products []*productAcc

	processed := 0
	for _, order := range list {
		if order == nil || !include[order.Status] {
			continue
		}
		if processed == MaxPrepOrders {
			break
		}
		processed++

		for _, line := range order.Items {
			if line.Name == "" || line.Quantity <= 0 {
				continue
			}

			idx, ok := productIndex[line.Name]
			if !ok {
				idx = len(products)
				productIndex[line.Name] = idx
				products = append(products, &productAcc{
					item:     PrepItem{Name: line.Name},
					orderIDs: make(map[int64]struct{}),
					variants: variantAcc{index: make(map[string]int)},
				})
			}
			p := products[idx]

			q := NormalizeVariant(line.Variant)
			weight := mulSat(q.WeightGrams, line.Quantity)
			pieces := mulSat(q.Pieces, line.Quantity)

			p.item.TotalQuantity = addSat(p.item.TotalQuantity, line.Quantity)
			p.item.TotalWeight = addSat(p.item.TotalWeight, weight)
			p.item.TotalPieces = addSat(p.item.TotalPieces, pieces)
			p.orderIDs[order.ID] = struct{}{}

			vi, ok := p.variants.index[line.Variant]
			if !ok {
				vi = len(p.variants.list)
				p.variants.index[line.Variant] = vi
				p.variants.list = append(p.variants.list, VariantAggregate{Variant: line.Variant})
			}
			v := &p.variants.list[vi]
			v.Quantity = addSat(v.Quantity, line.Quantity)
			v.Weight = addSat(v.Weight, weight)
			v.Pieces = addSat(v.Pieces, pieces)
		}
	}

	out := make([]PrepItem, 0, len(products))
	for _, p := range products {
		item := p.item
		item.OrderCount = len(p.orderIDs)
		item.Variants = p.variants.list
		item.Priority = Priority(item.OrderCount, item.TotalWeight, item.TotalPieces)
		item.EstimatedPrepTime = PrepTime(item.TotalWeight, item.TotalPieces)
		out = append(out, item)
	}
	return out
}

// Priority picks the first tier whose thresholds are met.
func Priority(orderCount, weightGrams, pieces int) string {
	if orderCount >= 3 || weightGrams >= 2000 || pieces >= 10 {
		return PriorityHigh
	}
	if orderCount >= 2 || weightGrams >= 1000 || pieces >= 5 {
		return PriorityMedium
	}
	return PriorityLow
}

// PrepTime estimates minutes: one per 100g of bulk weight, two per hand-made
// piece, never below five.
func PrepTime(weightGrams, pieces int) int {
	minutes := addSat(weightGrams/100, mulSat(pieces, 2))
	if minutes < 5 {
		return 5
	}
	return minutes
}

// addSat and mulSat work on non-negative operands and stick at math.MaxInt
// instead of wrapping.
func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func mulSat(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}
