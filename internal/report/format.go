package report

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with grouping separators.
var printer = message.NewPrinter(language.English)

// formatBytes renders a byte count such as "12,345 bytes (12.1 KiB)".
func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return printer.Sprintf("%d bytes", n)
	}

	value := float64(n)
	suffixes := []string{"KiB", "MiB", "GiB"}
	i := -1
	for value >= unit && i < len(suffixes)-1 {
		value /= unit
		i++
	}
	return printer.Sprintf("%d bytes (%.1f %s)", n, value, suffixes[i])
}

// formatPercent renders a percentage with two decimals.
func formatPercent(p float64) string {
	return printer.Sprintf("%.2f%%", p)
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// decodeStatus describes what happened when decoding the body.
func decodeStatus(encoding string, attempted, succeeded bool) string {
	switch {
	case encoding == "":
		return "not encoded"
	case !attempted:
		return "unsupported encoding"
	case succeeded:
		return "decoded"
	default:
		return "decode failed"
	}
}
