// Package currency converts between user-facing monetary strings and the
// float64 amounts used by the rest of the application.
package currency

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Parse extracts a decimal amount from free-form user input, dropping
// currency symbols and thousands separators ("$1,234.56" -> 1234.56).
// Empty or unparseable input yields 0; Parse never fails.
func Parse(text string) float64 {
	var b strings.Builder
	for _, r := range strings.TrimSpace(text) {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return value
}

// Format renders amount as a dollar string with locale grouping and exactly
// two fraction digits. Negative amounts carry a leading minus sign.
func Format(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	formatted := printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
	return sign + "$" + formatted
}
