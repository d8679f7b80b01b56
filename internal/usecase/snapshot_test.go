package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"FundRadar/internal/domain/models"
)

type fakeAggregator struct {
	table models.CanonicalTable
	bases []string
	err   error
	calls int
}

func (f *fakeAggregator) FetchAll(ctx context.Context) (models.CanonicalTable, []string, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	// Fresh table per cycle, like the real source.
	table := make(models.CanonicalTable)
	for asset, byVenue := range f.table {
		for venue, rate := range byVenue {
			table.Set(asset, venue, rate)
		}
	}
	return table, f.bases, nil
}

func newTestBuilder(t *testing.T, agg *fakeAggregator, src *fakeSource) *SnapshotBuilder {
	t.Helper()
	orch := NewBatchOrchestrator(src, 10, time.Second, 0, testLogger(t), nopMetrics{})
	return NewSnapshotBuilder(agg, orch, []string{"USD", "USDC"}, testLogger(t), nopMetrics{})
}

func TestBuildMergesVenues(t *testing.T) {
	agg := &fakeAggregator{
		table: models.CanonicalTable{
			"BTC": {models.VenueHyperliquid: 0.0002, models.VenueLighter: 0.0003},
			"ETH": {models.VenueHyperliquid: 0.0001, models.VenueLighter: 0.0002},
		},
		bases: []string{"BTC", "ETH"},
	}
	src := &fakeSource{rates: map[string]float64{"BTC": 0.0004}}

	snap, err := newTestBuilder(t, agg, src).Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.TotalAssets != 2 {
		t.Fatalf("unexpected totalAssets %d", snap.TotalAssets)
	}
	if len(snap.Data["BTC"]) != 3 {
		t.Fatalf("expected three venues for BTC, got %v", snap.Data["BTC"])
	}
	if snap.Data["BTC"][models.VenueParadex] != 0.0004 {
		t.Fatalf("unexpected paradex rate %v", snap.Data["BTC"][models.VenueParadex])
	}
	// ETH has no Paradex market and keeps its two aggregator venues.
	if len(snap.Data["ETH"]) != 2 {
		t.Fatalf("expected two venues for ETH, got %v", snap.Data["ETH"])
	}
	if snap.Timestamp.IsZero() || snap.Timestamp.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", snap.Timestamp)
	}
}

func TestBuildAggregatorFailureIsFatal(t *testing.T) {
	agg := &fakeAggregator{err: errors.New("upstream down")}
	if _, err := newTestBuilder(t, agg, &fakeSource{}).Build(context.Background(), BuildOptions{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBuildOptionsNarrowCycle(t *testing.T) {
	agg := &fakeAggregator{
		table: models.CanonicalTable{
			"BTC": {models.VenueLighter: 0.0001},
			"ETH": {models.VenueLighter: 0.0002},
			"SOL": {models.VenueLighter: 0.0003},
		},
		bases: []string{"BTC", "ETH", "SOL"},
	}
	src := &fakeSource{rates: map[string]float64{"BTC": 0.001, "ETH": 0.002, "SOL": 0.003}}

	snap, err := newTestBuilder(t, agg, src).Build(context.Background(), BuildOptions{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paradex := 0
	for _, byVenue := range snap.Data {
		if _, ok := byVenue[models.VenueParadex]; ok {
			paradex++
		}
	}
	if paradex != 2 {
		t.Fatalf("expected limit to cap per-market fetches, got %d", paradex)
	}

	snap, err = newTestBuilder(t, agg, src).Build(context.Background(), BuildOptions{Bases: []string{"SOL"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := snap.Data["SOL"][models.VenueParadex]; !ok {
		t.Fatalf("expected explicit base to be fetched")
	}
	if _, ok := snap.Data["BTC"][models.VenueParadex]; ok {
		t.Fatalf("expected other bases to be skipped")
	}
}
