// Package money handles currency amounts entered by users and returned by the
// budget service.
package money

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finpilot/internal/common"
	"github.com/shopspring/decimal"
)

// Parse reads a user-entered amount such as "1,250.50" or "$80".
// The result must be strictly positive.
func Parse(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "_", "")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: %q must be greater than zero", common.ErrInvalidAmount, s)
	}

	return d.Round(2).InexactFloat64(), nil
}

// RoundUnits rounds to a whole currency unit, halves away from zero.
func RoundUnits(v float64) float64 {
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

// Sum adds amounts without accumulating binary floating point drift.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// Format renders an amount with thousands separators and no decimals when
// the amount is whole, e.g. "$1,250" or "-$12.50".
func Format(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.Truncate(0)
	frac := d.Sub(whole)

	out := sign + "$" + group(whole.String())
	if !frac.IsZero() {
		out += "." + d.StringFixed(2)[len(whole.String())+1:]
	}
	return out
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
