package schema

import (
	"strings"
)

// Tables holds the heuristic keyword lists and the venue alias map. The
// upstream aggregator documents no schema, so field classification is
// substring matching against these lists. They are plain data: injected at
// construction and never mutated, so alternates can be swapped in per test
// or per deployment.
type Tables struct {
	PlatformKeys []string
	SymbolKeys   []string
	RateKeys     []string

	// Rate-field preference tiers, matched against the cleaned key name.
	CurrentRateKeys   []string
	PredictedRateKeys []string

	// Cleaned alias -> canonical venue label.
	PlatformAliases map[string]string
}

// DefaultTables returns the tables tuned for the zkLighter aggregator and
// the Paradex per-market feed.
func DefaultTables() Tables {
	return Tables{
		PlatformKeys: []string{"platform", "exchange", "venue", "source", "provider", "dex", "market_provider"},
		SymbolKeys:   []string{"symbol", "market", "pair", "name", "base", "asset", "coin", "ticker"},
		RateKeys:     []string{"funding_rate", "fundingrate", "hourlyfundingrate", "predictedfundingrate", "rate", "value"},

		CurrentRateKeys:   []string{"hourlyfundingrate", "currentfundingrate", "fundingrate"},
		PredictedRateKeys: []string{"predicted", "next"},

		PlatformAliases: map[string]string{
			"lighter":       "Lighter",
			"zklighter":     "Lighter",
			"hyperliquid":   "Hyperliquid",
			"hyperliquidv2": "Hyperliquid",
			"hyper":         "Hyperliquid",
			"paradex":       "Paradex",
		},
	}
}

// CleanAlnum strips everything but letters and digits and lowercases,
// collapsing noisy labels like "zkLighter-v2" to "zklighterv2".
func CleanAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r >= 'A' && r <= 'Z' {
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// BaseFromSymbol derives the canonical base asset from a raw market string:
// uppercase, separators normalized to "-", first segment. "BTC/USDT" -> "BTC",
// "eth_usd" -> "ETH". Returns "?" when nothing remains.
func BaseFromSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	s = strings.NewReplacer("/", "-", "_", "-").Replace(s)
	for _, part := range strings.Split(s, "-") {
		if part != "" {
			return part
		}
	}
	return "?"
}

func containsAny(k string, keywords []string) bool {
	k = strings.ToLower(k)
	for _, w := range keywords {
		if strings.Contains(k, w) {
			return true
		}
	}
	return false
}

// IsPlatformKey reports whether a field name likely names a venue.
func (t Tables) IsPlatformKey(k string) bool { return containsAny(k, t.PlatformKeys) }

// IsSymbolKey reports whether a field name likely names a market symbol.
func (t Tables) IsSymbolKey(k string) bool { return containsAny(k, t.SymbolKeys) }

// IsRateKey reports whether a field name likely carries a funding rate.
// The index/time exclusion keeps fields like "funding_index_time" out.
func (t Tables) IsRateKey(k string) bool {
	lk := strings.ToLower(k)
	if containsAny(lk, t.RateKeys) {
		return true
	}
	return strings.Contains(lk, "fund") && !strings.Contains(lk, "index") && !strings.Contains(lk, "time")
}

// NormPlatform canonicalizes a noisy venue label ("zkLighter-v2", "HYPER")
// via exact alias lookup, then substring containment. Returns false when
// nothing matches; callers must not assume every label resolves.
func (t Tables) NormPlatform(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	key := CleanAlnum(raw)
	if v, ok := t.PlatformAliases[key]; ok {
		return v, true
	}
	for alias, v := range t.PlatformAliases {
		if strings.Contains(key, alias) {
			return v, true
		}
	}
	return "", false
}
