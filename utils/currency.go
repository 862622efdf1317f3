package utils

import (
	"fmt"
	"strings"
)

// FormatCurrencyINR formats an amount as Indian Rupees in lakh/crore
// notation: the last three digits form one group, everything above
// groups in pairs. Example: 1234567.89 -> "Rs 12,34,567.89"
func FormatCurrencyINR(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	if len(integerPart) <= 3 {
		return "Rs " + integerPart + "." + decimalPart
	}

	head := integerPart[:len(integerPart)-3]
	result := []string{integerPart[len(integerPart)-3:]}
	for i := len(head); i > 0; i -= 2 {
		start := i - 2
		if start < 0 {
			start = 0
		}
		result = append([]string{head[start:i]}, result...)
	}

	return "Rs " + strings.Join(result, ",") + "." + decimalPart
}
