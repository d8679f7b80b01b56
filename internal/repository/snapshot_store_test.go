package repository

import (
	"context"
	"testing"
	"time"

	"FundRadar/internal/domain/models"
	icache "FundRadar/internal/service/cache"
)

func TestSnapshotStoreRoundTrip(t *testing.T) {
	store := NewSnapshotStore(icache.NewTTLCache())
	ctx := context.Background()

	if _, ok, err := store.Get(ctx); ok || err != nil {
		t.Fatalf("expected empty store, ok=%v err=%v", ok, err)
	}

	table := make(models.CanonicalTable)
	table.Set("BTC", models.VenueHyperliquid, 0.0002)
	table.Set("BTC", models.VenueParadex, 0.0004)
	snap := &models.Snapshot{
		Data:        table,
		Timestamp:   time.Now().UTC().Truncate(time.Second),
		TotalAssets: 1,
	}

	if err := store.Set(ctx, snap, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := store.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.TotalAssets != 1 {
		t.Fatalf("unexpected totalAssets %d", got.TotalAssets)
	}
	if got.Data["BTC"][models.VenueParadex] != 0.0004 {
		t.Fatalf("unexpected rate %v", got.Data["BTC"])
	}
	if !got.Timestamp.Equal(snap.Timestamp) {
		t.Fatalf("timestamp drift: %v vs %v", got.Timestamp, snap.Timestamp)
	}
}
