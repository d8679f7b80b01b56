package util

import "testing"

func TestSplitUpperCSV(t *testing.T) {
	got := SplitUpperCSV("usd, usdc,")
	if len(got) != 2 || got[0] != "USD" || got[1] != "USDC" {
		t.Fatalf("unexpected split %v", got)
	}
	if got := SplitUpperCSV(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	if got := SplitUpperCSV(" , ,"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice for blank entries, got %v", got)
	}
}
