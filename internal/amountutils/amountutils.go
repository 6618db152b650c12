// Package amountutils provides monetary amount parsing helpers shared by the
// statement parsers. Amounts are handled as shopspring decimals so repeated
// sums never accumulate binary float error.
package amountutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyRunes = regexp.MustCompile(`[R$€£\s]`)

// ParseAmount parses a string representation of an amount into a decimal value.
// It handles Brazilian statement formats like "R$ 1.234,56", "1.234,56",
// "1234,56" as well as plain dot-decimal forms like "1234.56".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if amountStr == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts Brazilian currency strings to a form accepted by
// decimal.NewFromString. Handles "R$ 1.234,56" -> "1234.56", "1234,56" ->
// "1234.56" and leaves "1234.56" untouched. A leading minus sign survives.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyRunes.ReplaceAllString(amountStr, "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// Brazilian format: dot thousands, comma decimals (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Anglo format with comma thousands (1,234.56)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		parts := strings.Split(amountStr, ",")
		if len(parts) > 1 && len(parts[len(parts)-1]) <= 2 {
			// Comma used as decimal separator (1234,56)
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Comma used as thousand separator (1,234)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return amountStr
}

// FromCentavos converts an integer count of minor units into a decimal amount,
// e.g. 5000 -> 50.00. CNAB amount fields are written this way.
func FromCentavos(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// IsPositive reports whether an amount is strictly greater than zero.
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}

// FormatBRL formats a decimal amount for operator display: fixed two decimals
// with a comma separator ("1234,50"). Thousands grouping is not applied.
func FormatBRL(amount decimal.Decimal) string {
	return strings.ReplaceAll(amount.StringFixed(2), ".", ",")
}
