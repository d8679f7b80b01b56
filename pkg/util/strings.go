package util

import "strings"

// SplitUpperCSV splits a comma-separated list, trims and uppercases each
// entry, and drops empties. "usd, usdc," -> ["USD", "USDC"].
func SplitUpperCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
