package orders

import (
	"bytes"
	"encoding/json"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// wireItem mirrors the stored item shape but keeps the loosely typed fields raw
// so a single bad field zero-fills instead of rejecting the whole list.
type wireItem struct {
	Name     json.RawMessage `json:"name"`
	Quantity json.RawMessage `json:"quantity"`
	Variant  json.RawMessage `json:"variant"`
	Price    json.RawMessage `json:"price"`
}

// DecodeItems turns a stored item blob into line items.
// Accepts a JSON array or a JSON string holding an array. Anything else
// yields an empty list.
func DecodeItems(raw []byte) []LineItem {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	// double-encoded blob: "[{...}]"
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			log.Printf("[ORDERS] unreadable item blob: %v", err)
			return nil
		}
		raw = bytes.TrimSpace([]byte(inner))
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		log.Printf("[ORDERS] item blob is not a list: %v", err)
		return nil
	}

	items := make([]LineItem, 0, len(elems))
	for _, e := range elems {
		var w wireItem
		if err := json.Unmarshal(e, &w); err != nil {
			continue
		}
		items = append(items, LineItem{
			Name:     rawString(w.Name),
			Quantity: rawInt(w.Quantity),
			Variant:  rawString(w.Variant),
			Price:    rawDecimal(w.Price),
		})
	}
	return items
}

// EncodeItems is the inverse used by the repositories when persisting.
func EncodeItems(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(items)
}

func rawString(r json.RawMessage) string {
	var s string
	if len(r) == 0 || json.Unmarshal(r, &s) != nil {
		return ""
	}
	return s
}

func rawInt(r json.RawMessage) int {
	if len(r) == 0 {
		return 0
	}

	var n json.Number
	if err := json.Unmarshal(r, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil && f > math.MinInt32 && f < math.MaxInt32 {
			return int(f)
		}
		return 0
	}

	var s string
	if err := json.Unmarshal(r, &s); err == nil {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i
		}
	}
	return 0
}

func rawDecimal(r json.RawMessage) decimal.Decimal {
	if len(r) == 0 {
		return decimal.Zero
	}

	var n json.Number
	if err := json.Unmarshal(r, &n); err != nil {
		var s string
		if err := json.Unmarshal(r, &s); err != nil {
			return decimal.Zero
		}
		n = json.Number(strings.TrimSpace(s))
	}

	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
