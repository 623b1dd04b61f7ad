package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a report amount such as "1,234.56" to a decimal.
// Thousands separators are stripped first. Anything that still fails to
// parse is reported as a miss rather than an error.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseAmountPtr is ParseAmount for optional fields.
func ParseAmountPtr(raw string) *decimal.Decimal {
	d, ok := ParseAmount(raw)
	if !ok {
		return nil
	}
	return &d
}

// ParseCount converts an integer token, tolerating thousands separators.
func ParseCount(raw string) (int, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseCountPtr is ParseCount for optional fields.
func ParseCountPtr(raw string) *int {
	n, ok := ParseCount(raw)
	if !ok {
		return nil
	}
	return &n
}

// FormatAmount renders an optional amount with two decimals, or "" when absent.
func FormatAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

// AmountFloat converts an amount for output formats that only carry
// floating point numbers. Never use the result for arithmetic.
func AmountFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
