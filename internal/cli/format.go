// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount formats a monetary amount with comma separators.
// e.g., 1500000 -> "1,500,000"
func FormatAmount(n int64) string {
	if n < 0 {
		return "-" + FormatAmount(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatRate formats a usage rate already expressed as a percentage.
// e.g., 62.5 -> "62.5%"
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// FormatOptAmount formats an optional amount, with a dash for absent.
func FormatOptAmount(n *int64) string {
	if n == nil {
		return "—"
	}
	return FormatAmount(*n)
}
