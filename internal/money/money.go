// Package money defines the fixed-precision decimal conventions used for all
// monetary, percentage and quantity fields. Values cross the persistence and
// HTTP boundaries as exact decimal strings; parsing and formatting happen
// here and nowhere else.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Decimal scales per field kind. Currency amounts carry two decimal places,
// percentages four, and quantities eight (enough for fractional crypto).
const (
	CurrencyScale = 2
	PercentScale  = 4
	QuantityScale = 8
)

// ParseCurrency parses a currency amount from its exact string form.
func ParseCurrency(s string) (decimal.Decimal, error) {
	return parse(s, "currency")
}

// ParsePercent parses a percentage from its exact string form.
func ParsePercent(s string) (decimal.Decimal, error) {
	return parse(s, "percentage")
}

// ParseQuantity parses a quantity from its exact string form.
func ParseQuantity(s string) (decimal.Decimal, error) {
	return parse(s, "quantity")
}

func parse(s, kind string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s %q: %w", kind, s, err)
	}
	return d, nil
}

// Currency rounds a computed amount to the currency scale.
func Currency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyScale)
}

// Percent rounds a computed percentage to the percentage scale.
func Percent(d decimal.Decimal) decimal.Decimal {
	return d.Round(PercentScale)
}

// Quantity rounds a quantity to the quantity scale.
func Quantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(QuantityScale)
}

// FormatCurrency renders a currency amount at its fixed scale, e.g. "135684.60".
func FormatCurrency(d decimal.Decimal) string {
	return d.StringFixed(CurrencyScale)
}

// FormatPercent renders a percentage at its fixed scale, e.g. "125.9470".
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(PercentScale)
}

// FormatQuantity renders a quantity at its fixed scale.
func FormatQuantity(d decimal.Decimal) string {
	return d.StringFixed(QuantityScale)
}
