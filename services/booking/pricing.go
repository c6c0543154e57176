package booking

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// onlineDiscount is the fixed incentive for paying online. It is applied
// exactly once, at the moment a checkout session is created, and never
// recomputed afterwards.
const onlineDiscount = 0.10

// ParsePriceCents extracts a minor-unit amount from a display price such as
// "$45.00" or "45". Unparsable input yields 0 so callers can fall back to the
// catalog.
func ParsePriceCents(price string) int64 {
	var b strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * 100))
}

// DiscountedCents applies the pay-online discount, rounded to the nearest
// minor currency unit.
func DiscountedCents(cents int64) int64 {
	return int64(math.Round(float64(cents) * (1 - onlineDiscount)))
}

// FormatCents renders a minor-unit amount as a display price.
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
