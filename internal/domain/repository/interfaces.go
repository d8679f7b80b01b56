package repository

import (
	"context"
	"errors"
	"time"

	"FundRadar/internal/domain/models"
)

// ErrNoMarket reports that no quote candidate produced a usable rate for a
// base asset. Consumers treat it as "no data for this venue", not a failure.
var ErrNoMarket = errors.New("no market with a usable rate")

// AggregatorSource reads the multi-venue aggregator feed once and returns
// the partial canonical table it yields plus the ordered list of base
// assets seen on Lighter, which seeds the per-market fetches.
type AggregatorSource interface {
	FetchAll(ctx context.Context) (models.CanonicalTable, []string, error)
}

// MarketSource fetches the latest hourly rate for one base asset from a
// per-market endpoint, trying each quote currency candidate in order.
type MarketSource interface {
	LatestRate(ctx context.Context, base string, quotes []string) (float64, error)
}

// SnapshotCache stores the most recent completed snapshot for the hosting
// endpoint; the collection cycle itself never reads from it.
type SnapshotCache interface {
	Get(ctx context.Context) (*models.Snapshot, bool, error)
	Set(ctx context.Context, snap *models.Snapshot, ttl time.Duration) error
}

// Publisher emits completed snapshots to an event stream.
type Publisher interface {
	PublishSnapshot(ctx context.Context, snap *models.Snapshot) error
	Close() error
}

type Metrics interface {
	RecordVenueFetch(venue, result string)
	RecordError(kind string)
	RecordRate(asset, venue string, rate float64)
	RecordCycleDuration(seconds float64)
	RecordAssetCount(n int)
}
