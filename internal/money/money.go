// Package money formats minor-unit amounts for display. Ledger math is
// integer-only; decimal conversion happens at the presentation edge.
package money

import (
	"github.com/shopspring/decimal"
)

// Exponent is the number of minor-unit digits in a major unit. CFA
// franc amounts carry no decimals.
const Exponent = 0

// Currency is the display suffix.
const Currency = "FCFA"

// FromMinor converts a minor-unit amount to its decimal value.
func FromMinor(amount int64) decimal.Decimal {
	return decimal.New(amount, -Exponent)
}

// Format renders an amount with a thousands separator and the currency
// suffix, e.g. "12 500 FCFA".
func Format(amount int64) string {
	d := FromMinor(amount)

	s := d.StringFixed(Exponent)

	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart = s[:i]
			fracPart = s[i:]
			break
		}
	}

	var grouped []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ' ')
		}
		grouped = append(grouped, c)
	}

	out := string(grouped) + fracPart + " " + Currency
	if neg {
		out = "-" + out
	}

	return out
}
