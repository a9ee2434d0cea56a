package kitchen

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var variantNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// maxVariantUnits bounds grams or pieces per unit; larger labels read as zero.
const maxVariantUnits = math.MaxInt32

// NormalizeVariant reads a free-text packing label ("1kg", "250 gm", "6 pcs")
// into grams or pieces. Unreadable labels give the zero value.
//
// Unit checks run in a fixed order and the first hit wins, so any label with a
// "g" that is not a "kg" counts as grams.
func NormalizeVariant(label string) VariantQuantity {
	if label == "" {
		return VariantQuantity{}
	}

	v := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(label))

	match := variantNumber.FindString(v)
	if match == "" {
		return VariantQuantity{}
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return VariantQuantity{}
	}

	// weight
	if strings.Contains(v, "kg") {
		grams := math.Round(value * 1000)
		if grams > maxVariantUnits {
			return VariantQuantity{}
		}
		return VariantQuantity{WeightGrams: int(grams)}
	}
	if strings.Contains(v, "gm") || strings.Contains(v, "g") {
		if value > maxVariantUnits {
			return VariantQuantity{}
		}
		return VariantQuantity{WeightGrams: int(value)}
	}

	// pieces
	if strings.Contains(v, "pcs") || strings.Contains(v, "ps") || strings.Contains(v, "pc") {
		if value > maxVariantUnits {
			return VariantQuantity{}
		}
		return VariantQuantity{Pieces: int(value)}
	}

	return VariantQuantity{}
}
