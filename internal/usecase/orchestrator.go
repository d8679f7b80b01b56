package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"FundRadar/internal/domain/models"
	drepo "FundRadar/internal/domain/repository"
	applogger "FundRadar/pkg/logger"
)

// Outcome classifies one per-asset fetch for observability. All non-ok
// outcomes collapse to omission in the canonical table.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeTimeout  Outcome = "timeout"
	OutcomeError    Outcome = "error"
	OutcomeNoMarket Outcome = "no_market"
)

// BatchOrchestrator runs per-market fetches for many assets under a
// concurrency cap: assets are split into sequential chunks, every fetch in
// a chunk runs concurrently against its own timeout, and the next chunk
// starts only after the previous one has fully settled. One slow or broken
// market costs at most one timeout, never the cycle.
type BatchOrchestrator struct {
	source         drepo.MarketSource
	batchSize      int
	requestTimeout time.Duration
	batchDelay     time.Duration
	logger         *applogger.Logger
	metrics        drepo.Metrics
}

func NewBatchOrchestrator(
	source drepo.MarketSource,
	batchSize int,
	requestTimeout time.Duration,
	batchDelay time.Duration,
	logger *applogger.Logger,
	metrics drepo.Metrics,
) *BatchOrchestrator {
	if batchSize < 1 {
		batchSize = 10
	}
	return &BatchOrchestrator{
		source:         source,
		batchSize:      batchSize,
		requestTimeout: requestTimeout,
		batchDelay:     batchDelay,
		logger:         logger,
		metrics:        metrics,
	}
}

// FetchAllLatest fetches the latest hourly rate for every base asset and
// returns only the assets that produced one. Failures and timeouts are
// final for the cycle; there are no retries.
func (o *BatchOrchestrator) FetchAllLatest(ctx context.Context, bases []string, quotes []string) map[string]float64 {
	out := make(map[string]float64, len(bases))
	var mu sync.Mutex

	for start := 0; start < len(bases); start += o.batchSize {
		end := start + o.batchSize
		if end > len(bases) {
			end = len(bases)
		}
		chunk := bases[start:end]

		var wg sync.WaitGroup
		for _, base := range chunk {
			wg.Add(1)
			go func(base string) {
				defer wg.Done()
				rate, outcome := o.fetchOne(ctx, base, quotes)
				o.metrics.RecordVenueFetch(string(models.VenueParadex), string(outcome))
				if outcome != OutcomeOK {
					if outcome != OutcomeNoMarket {
						o.logger.Debug("per-market fetch dropped",
							applogger.String("base", base),
							applogger.String("outcome", string(outcome)),
						)
					}
					return
				}
				mu.Lock()
				out[base] = rate
				mu.Unlock()
			}(base)
		}
		wg.Wait()

		if end < len(bases) && o.batchDelay > 0 {
			select {
			case <-ctx.Done():
				return out
			case <-time.After(o.batchDelay):
			}
		}
	}

	return out
}

func (o *BatchOrchestrator) fetchOne(ctx context.Context, base string, quotes []string) (float64, Outcome) {
	fctx, cancel := context.WithTimeout(ctx, o.requestTimeout)
	defer cancel()

	rate, err := o.source.LatestRate(fctx, base, quotes)
	switch {
	case err == nil:
		return rate, OutcomeOK
	case errors.Is(err, context.DeadlineExceeded):
		return 0, OutcomeTimeout
	case errors.Is(err, drepo.ErrNoMarket):
		return 0, OutcomeNoMarket
	default:
		return 0, OutcomeError
	}
}
