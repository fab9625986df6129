// Package money keeps prices in integer paise. Decimal conversion happens only
// when an amount is rendered for display or parsed from admin input.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const currencySymbol = "₹"

// Paise is an amount in the smallest indivisible rupee unit.
type Paise int64

var hundred = decimal.NewFromInt(100)

// Format renders p as rupees with two decimals, e.g. "₹12.50".
func Format(p Paise) string {
	return currencySymbol + decimal.New(int64(p), -2).StringFixed(2)
}

// FormatShort renders p compactly: "₹1.5k" from a thousand rupees up, whole rupees below.
func FormatShort(p Paise) string {
	rupees := decimal.New(int64(p), -2)

	if rupees.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return currencySymbol + decimal.New(int64(p), -5).StringFixed(1) + "k"
	}

	return currencySymbol + rupees.Round(0).String()
}

// ParseRupees converts a rupee amount such as "49.99" into paise, rounding half
// away from zero at the third decimal.
func ParseRupees(s string) (Paise, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid rupee amount %q: %w", s, err)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("rupee amount must not be negative: %q", s)
	}

	return Paise(d.Mul(hundred).Round(0).IntPart()), nil
}

func (p Paise) String() string {
	return Format(p)
}
