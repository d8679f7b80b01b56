package schema

import "testing"

func TestCleanAlnum(t *testing.T) {
	if got := CleanAlnum("zkLighter-v2"); got != "zklighterv2" {
		t.Fatalf("unexpected clean %q", got)
	}
	if got := CleanAlnum("  Hyper Liquid_2 "); got != "hyperliquid2" {
		t.Fatalf("unexpected clean %q", got)
	}
	if got := CleanAlnum(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestBaseFromSymbol(t *testing.T) {
	cases := map[string]string{
		"BTC/USDT":     "BTC",
		"eth_usd":      "ETH",
		"SOL-USD-PERP": "SOL",
		"doge":         "DOGE",
		"":             "?",
		"---":          "?",
	}
	for in, want := range cases {
		if got := BaseFromSymbol(in); got != want {
			t.Fatalf("BaseFromSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormPlatform(t *testing.T) {
	tables := DefaultTables()

	got, ok := tables.NormPlatform("zkLighter-v2")
	if !ok || got != "Lighter" {
		t.Fatalf("expected Lighter, got %q ok=%v", got, ok)
	}
	got, ok = tables.NormPlatform("HYPERLIQUID")
	if !ok || got != "Hyperliquid" {
		t.Fatalf("expected Hyperliquid, got %q ok=%v", got, ok)
	}
	// Substring containment catches decorated labels.
	got, ok = tables.NormPlatform("paradex-mainnet")
	if !ok || got != "Paradex" {
		t.Fatalf("expected Paradex, got %q ok=%v", got, ok)
	}
	if _, ok := tables.NormPlatform("binance"); ok {
		t.Fatalf("expected unknown venue to not resolve")
	}
	if _, ok := tables.NormPlatform(""); ok {
		t.Fatalf("expected empty label to not resolve")
	}
}

func TestIsRateKey(t *testing.T) {
	tables := DefaultTables()

	for _, k := range []string{"funding_rate", "hourlyFundingRate", "funding"} {
		if !tables.IsRateKey(k) {
			t.Fatalf("expected %q to be a rate key", k)
		}
	}
	for _, k := range []string{"funding_index", "funding_index_time", "next_funding_time", "open_interest"} {
		if tables.IsRateKey(k) {
			t.Fatalf("expected %q to not be a rate key", k)
		}
	}
}

func TestIsPlatformAndSymbolKeys(t *testing.T) {
	tables := DefaultTables()

	if !tables.IsPlatformKey("exchange_name") {
		t.Fatalf("expected platform key match")
	}
	if tables.IsPlatformKey("rate") {
		t.Fatalf("unexpected platform key match")
	}
	if !tables.IsSymbolKey("market") {
		t.Fatalf("expected symbol key match")
	}
}
