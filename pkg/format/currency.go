// Package format renders monetary amounts for display.
package format

import (
	"math"
	"strings"

	"github.com/iwvelando/lease-amortization/pkg/constants"
	"github.com/iwvelando/lease-amortization/pkg/mathutil"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// WithCode formats amount for the given ISO currency code. Known codes use
// their symbol ("€1,234.56"); others are prefixed with the code ("CHF 1,234.56").
func WithCode(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = constants.DefaultCurrency
	}
	prefix, ok := symbols[code]
	if !ok {
		prefix = code + " "
	}

	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-" + prefix + formatted
	}
	return prefix + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-" + formatted
	}
	return formatted
}

// Percent renders a percentage with two decimals (e.g., "5.50%").
func Percent(value float64) string {
	return mathutil.ToCents(value).StringFixed(constants.DisplayPlaces) + "%"
}

func formatPositiveCurrency(value float64) string {
	formatted := mathutil.ToCents(value).StringFixed(constants.DisplayPlaces)
	intPart, decPart, _ := strings.Cut(formatted, ".")

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
