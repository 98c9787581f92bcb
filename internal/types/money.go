// README: Billed-amount coercion shared by every report sum.
package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NormalizeAmount turns a raw billed amount into a float.
// Numbers pass through unchanged; strings lose their thousands separators and are parsed.
// Anything else, including an unparseable string, counts as 0.
func NormalizeAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		return parseAmount(n)
	default:
		return 0
	}
}

func parseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Round2 rounds to cents, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
