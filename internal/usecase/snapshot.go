package usecase

import (
	"context"
	"time"

	"FundRadar/internal/domain/models"
	drepo "FundRadar/internal/domain/repository"
	applogger "FundRadar/pkg/logger"
)

// BuildOptions narrows one collection cycle. Zero values mean "collect
// everything the feeds offer".
type BuildOptions struct {
	// Bases restricts the per-market fetches to these assets instead of
	// the Lighter-derived universe.
	Bases []string
	// Limit caps the number of per-market fetches.
	Limit int
	// Quotes overrides the configured quote-currency candidates.
	Quotes []string
}

// SnapshotBuilder runs one full collection cycle: one aggregator read, a
// batched sweep of per-market fetches, and the union of both into a fresh
// canonical table. No state survives between cycles.
type SnapshotBuilder struct {
	agg     drepo.AggregatorSource
	orch    *BatchOrchestrator
	quotes  []string
	logger  *applogger.Logger
	metrics drepo.Metrics
}

func NewSnapshotBuilder(
	agg drepo.AggregatorSource,
	orch *BatchOrchestrator,
	quotes []string,
	logger *applogger.Logger,
	metrics drepo.Metrics,
) *SnapshotBuilder {
	return &SnapshotBuilder{
		agg:     agg,
		orch:    orch,
		quotes:  quotes,
		logger:  logger,
		metrics: metrics,
	}
}

// Build produces a snapshot. An aggregator failure fails the whole cycle;
// per-market failures degrade to missing Paradex entries.
func (b *SnapshotBuilder) Build(ctx context.Context, opts BuildOptions) (*models.Snapshot, error) {
	start := time.Now()

	table, lighterBases, err := b.agg.FetchAll(ctx)
	if err != nil {
		b.metrics.RecordError("cycle")
		return nil, err
	}

	bases := lighterBases
	if len(opts.Bases) > 0 {
		bases = opts.Bases
	}
	if opts.Limit > 0 && opts.Limit < len(bases) {
		bases = bases[:opts.Limit]
	}
	quotes := b.quotes
	if len(opts.Quotes) > 0 {
		quotes = opts.Quotes
	}

	third := b.orch.FetchAllLatest(ctx, bases, quotes)
	for base, rate := range third {
		table.Set(base, models.VenueParadex, rate)
		b.metrics.RecordRate(base, string(models.VenueParadex), rate)
	}

	snap := &models.Snapshot{
		Data:        table,
		Timestamp:   time.Now().UTC(),
		TotalAssets: len(table),
	}

	elapsed := time.Since(start)
	b.metrics.RecordCycleDuration(elapsed.Seconds())
	b.metrics.RecordAssetCount(snap.TotalAssets)
	b.logger.Info("cycle complete",
		applogger.Int("assets", snap.TotalAssets),
		applogger.Int("paradex_markets", len(third)),
		applogger.Duration("took_ms", elapsed),
	)

	return snap, nil
}
