// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney formats a USD amount, trimming precision as values grow.
// e.g., 4.5 -> "$4.50", 45.25 -> "$45.2", 450 -> "$450", 4500 -> "$4,500"
func FormatMoney(amount float64) string {
	if amount < 0 {
		return "-" + FormatMoney(-amount)
	}
	if amount >= 1000 {
		return "$" + FormatNumber(int64(math.Round(amount)))
	}
	if amount >= 100 {
		return fmt.Sprintf("$%.0f", amount)
	}
	if amount >= 10 {
		return fmt.Sprintf("$%.1f", amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
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

// FormatPercent formats a 0-100 float as a percentage string.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatStage converts a pipeline stage key into a display label.
// e.g., "needs_analysis" -> "Needs Analysis"
func FormatStage(stage string) string {
	if stage == "" {
		return "—"
	}
	parts := strings.Split(stage, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// FormatDate shortens an RFC 3339 timestamp to its date part.
func FormatDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// FormatOptional renders a possibly-nil string field for table cells.
func FormatOptional(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
