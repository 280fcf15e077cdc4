package common

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount formats a decimal amount with thousand separators and two
// decimal places, e.g. 1234.5 -> "1,234.50"
func FormatAmount(amount decimal.Decimal) string {
	str := amount.StringFixed(2)

	neg := strings.HasPrefix(str, "-")
	if neg {
		str = str[1:]
	}

	intPart := str
	fracPart := ""
	if i := strings.IndexByte(str, '.'); i >= 0 {
		intPart = str[:i]
		fracPart = str[i:]
	}

	// Add commas for thousands
	n := len(intPart)
	var result strings.Builder
	if neg {
		result.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	result.WriteString(fracPart)

	return result.String()
}

// FormatUSDC renders an amount the way the transfer UI shows it
func FormatUSDC(amount decimal.Decimal) string {
	return "$" + FormatAmount(amount) + " USDC"
}
