package usecase

import (
	"context"
	"time"

	"FundRadar/internal/domain/models"
	drepo "FundRadar/internal/domain/repository"
	applogger "FundRadar/pkg/logger"
)

// Broadcaster pushes a fresh snapshot to live subscribers.
type Broadcaster interface {
	Broadcast(snap *models.Snapshot)
}

// Refresher runs collection cycles on a timer and fans the result out to
// the snapshot cache, the event publisher and live subscribers. The cycle
// itself stays single-shot; this is just the clock around it.
type Refresher struct {
	builder   *SnapshotBuilder
	cache     drepo.SnapshotCache
	publisher drepo.Publisher
	caster    Broadcaster
	interval  time.Duration
	cacheTTL  time.Duration
	logger    *applogger.Logger
}

func NewRefresher(
	builder *SnapshotBuilder,
	cache drepo.SnapshotCache,
	publisher drepo.Publisher,
	caster Broadcaster,
	interval time.Duration,
	cacheTTL time.Duration,
	logger *applogger.Logger,
) *Refresher {
	return &Refresher{
		builder:   builder,
		cache:     cache,
		publisher: publisher,
		caster:    caster,
		interval:  interval,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Start runs the refresh loop until ctx is canceled. The first cycle runs
// immediately so the endpoint has data before the first tick.
func (r *Refresher) Start(ctx context.Context) {
	go func() {
		r.refresh(ctx)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.refresh(ctx)
			}
		}
	}()
}

func (r *Refresher) refresh(ctx context.Context) {
	snap, err := r.builder.Build(ctx, BuildOptions{})
	if err != nil {
		r.logger.Error("refresh cycle failed", applogger.Error(err))
		return
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, snap, r.cacheTTL); err != nil {
			r.logger.Warn("snapshot cache set failed", applogger.Error(err))
		}
	}
	if r.publisher != nil {
		if err := r.publisher.PublishSnapshot(ctx, snap); err != nil {
			r.logger.Warn("snapshot publish failed", applogger.Error(err))
		}
	}
	if r.caster != nil {
		r.caster.Broadcast(snap)
	}
}
