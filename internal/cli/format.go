// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var maxGroupable = decimal.NewFromInt(1 << 62)

// printer returns a message printer for locale, falling back to English.
func printer(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// FormatAmount formats d with locale digit grouping while keeping every
// stored fractional digit. e.g., 1234567.5 -> "1,234,567.5"
func FormatAmount(d decimal.Decimal, locale string) string {
	abs := d.Abs()
	if abs.GreaterThanOrEqual(maxGroupable) {
		return d.String()
	}

	p := printer(locale)
	intPart := abs.Truncate(0)
	out := p.Sprintf("%d", intPart.IntPart())

	if frac := abs.Sub(intPart); !frac.IsZero() {
		digits := strings.TrimPrefix(frac.String(), "0.")
		out += decimalSeparator(p) + digits
	}
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

// FormatPlain formats d without grouping, as accepted back by the amount input.
func FormatPlain(d decimal.Decimal) string {
	return d.String()
}

func decimalSeparator(p *message.Printer) string {
	s := p.Sprintf("%.1f", 1.5)
	if len(s) < 3 {
		return "."
	}
	return s[1 : len(s)-1]
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// Share returns part/whole as a float in [0, 1]; zero when whole is zero.
func Share(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	f := part.Div(whole).InexactFloat64()
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
