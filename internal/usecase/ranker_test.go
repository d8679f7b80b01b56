package usecase

import (
	"math"
	"testing"

	"FundRadar/internal/domain/models"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestRankMinMaxAndSignFlip(t *testing.T) {
	table := models.CanonicalTable{
		"BTC": {
			models.VenueHyperliquid: -0.001,
			models.VenueLighter:     0.0015,
			models.VenueParadex:     0.0008,
		},
	}

	rows := NewRanker(5).Rank(table, 0)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0]

	if row.MinVenue != models.VenueHyperliquid || row.MinRate != -0.001 {
		t.Fatalf("unexpected min %s %v", row.MinVenue, row.MinRate)
	}
	if row.MaxVenue != models.VenueLighter || row.MaxRate != 0.0015 {
		t.Fatalf("unexpected max %s %v", row.MaxVenue, row.MaxRate)
	}
	if !approx(row.Spread, 0.0025) {
		t.Fatalf("unexpected spread %v", row.Spread)
	}
	if !row.SignFlip {
		t.Fatalf("expected sign flip")
	}
	if row.AnnualizedSpread == nil {
		t.Fatalf("expected annualized spread on sign flip")
	}
	want := math.Pow(1+row.Spread, 8760) - 1
	if !approx(*row.AnnualizedSpread, want) {
		t.Fatalf("unexpected apy %v, want %v", *row.AnnualizedSpread, want)
	}
}

func TestRankSkipsSingleVenueAssets(t *testing.T) {
	table := models.CanonicalTable{
		"LONELY": {models.VenueParadex: 0.0001},
		"PAIR": {
			models.VenueHyperliquid: 0.0001,
			models.VenueLighter:     0.0002,
		},
	}

	rows := NewRanker(5).Rank(table, 0)
	if len(rows) != 1 || rows[0].Asset != "PAIR" {
		t.Fatalf("unexpected rows %v", rows)
	}
	if rows[0].SignFlip {
		t.Fatalf("same-sign spread must not flag")
	}
	if rows[0].AnnualizedSpread != nil {
		t.Fatalf("no apy without sign flip")
	}
}

func TestRankOrderingAndTruncation(t *testing.T) {
	table := models.CanonicalTable{
		// Sign flip, narrow spread.
		"AAA": {models.VenueHyperliquid: -0.0001, models.VenueLighter: 0.0001},
		// No flip, wide spread.
		"BBB": {models.VenueHyperliquid: 0.0001, models.VenueLighter: 0.01},
		// Sign flip, wide spread.
		"CCC": {models.VenueHyperliquid: -0.002, models.VenueLighter: 0.002},
		// No flip, narrow spread.
		"DDD": {models.VenueHyperliquid: 0.0001, models.VenueLighter: 0.0002},
	}

	rows := NewRanker(5).Rank(table, 3)
	if len(rows) != 3 {
		t.Fatalf("expected truncation to 3, got %d", len(rows))
	}
	want := []string{"CCC", "AAA", "BBB"}
	for i, w := range want {
		if rows[i].Asset != w {
			t.Fatalf("position %d: got %s, want %s (rows %v)", i, rows[i].Asset, w, rows)
		}
	}
}

func TestRankTieBreaksByAsset(t *testing.T) {
	table := models.CanonicalTable{
		"ZZZ": {models.VenueHyperliquid: 0.0001, models.VenueLighter: 0.0003},
		"MMM": {models.VenueHyperliquid: 0.0002, models.VenueLighter: 0.0004},
	}

	rows := NewRanker(5).Rank(table, 0)
	if len(rows) != 2 || rows[0].Asset != "MMM" || rows[1].Asset != "ZZZ" {
		t.Fatalf("expected asset-name tie break, got %v", rows)
	}
}

func TestRankEqualRatesTieToFirstVenue(t *testing.T) {
	table := models.CanonicalTable{
		"BTC": {models.VenueHyperliquid: 0.0002, models.VenueParadex: 0.0002},
	}

	rows := NewRanker(5).Rank(table, 0)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0]
	if row.MinVenue != models.VenueHyperliquid || row.MaxVenue != models.VenueHyperliquid {
		t.Fatalf("ties must resolve to the first venue in order, got %s/%s", row.MinVenue, row.MaxVenue)
	}
	if row.Spread != 0 || row.SignFlip {
		t.Fatalf("unexpected spread %v flip %v", row.Spread, row.SignFlip)
	}
}
