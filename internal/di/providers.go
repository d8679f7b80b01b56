package di

import (
	"fmt"

	"FundRadar/internal/domain/repository"
	"FundRadar/internal/handler/api"
	internalrepo "FundRadar/internal/repository"
	"FundRadar/internal/schema"
	"FundRadar/internal/service/aggregator"
	icache "FundRadar/internal/service/cache"
	"FundRadar/internal/service/paradex"
	"FundRadar/internal/service/ratelimit"
	"FundRadar/internal/usecase"
	"FundRadar/pkg/config"
	xhttp "FundRadar/pkg/http"
	pkgkafka "FundRadar/pkg/kafka"
	applogger "FundRadar/pkg/logger"
	"FundRadar/pkg/metrics"
	"FundRadar/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideTables builds the heuristic tables, merging configured venue
// aliases over the defaults.
func ProvideTables(cfg *config.Config) schema.Tables {
	t := schema.DefaultTables()
	for alias, venue := range cfg.Venues.Aliases {
		t.PlatformAliases[schema.CleanAlnum(alias)] = venue
	}
	return t
}

// ProvideExtractor creates the record extractor.
func ProvideExtractor(tables schema.Tables) *schema.Extractor {
	return schema.NewExtractor(tables)
}

// ProvideAggregatorSource creates the two-venue aggregator client.
func ProvideAggregatorSource(
	cfg *config.Config,
	extractor *schema.Extractor,
	logger *applogger.Logger,
	m repository.Metrics,
) repository.AggregatorSource {
	client := xhttp.NewClient(
		xhttp.WithTimeout(cfg.Aggregator.Timeout),
		xhttp.WithUserAgent(cfg.Aggregator.UserAgent),
	)
	return aggregator.New(client, cfg.Aggregator.URL, cfg.Aggregator.PeriodHours, extractor, logger, m)
}

// ProvideLimiter creates the shared token-bucket limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideMarketSource creates the Paradex per-market client.
func ProvideMarketSource(
	cfg *config.Config,
	limiter *ratelimit.Limiter,
	logger *applogger.Logger,
) repository.MarketSource {
	client := xhttp.NewClient(
		xhttp.WithTimeout(cfg.Paradex.Timeout),
		xhttp.WithUserAgent(cfg.Aggregator.UserAgent),
	)
	return paradex.New(client, cfg.Paradex.BaseURL, limiter, cfg.Paradex.MaxRPS, logger)
}

// ProvideOrchestrator creates the chunked per-market fetch orchestrator.
func ProvideOrchestrator(
	cfg *config.Config,
	source repository.MarketSource,
	logger *applogger.Logger,
	m repository.Metrics,
) *usecase.BatchOrchestrator {
	return usecase.NewBatchOrchestrator(
		source,
		cfg.Paradex.BatchSize,
		cfg.Paradex.Timeout,
		cfg.Paradex.BatchDelay,
		logger,
		m,
	)
}

// ProvideSnapshotBuilder creates the collection-cycle use case.
func ProvideSnapshotBuilder(
	agg repository.AggregatorSource,
	orch *usecase.BatchOrchestrator,
	cfg *config.Config,
	logger *applogger.Logger,
	m repository.Metrics,
) *usecase.SnapshotBuilder {
	return usecase.NewSnapshotBuilder(agg, orch, cfg.Paradex.Quotes, logger, m)
}

// ProvideRanker creates the discrepancy ranker.
func ProvideRanker(cfg *config.Config) *usecase.Ranker {
	return usecase.NewRanker(cfg.Ranker.Top)
}

// ProvideSnapshotStore creates the snapshot cache, or nil when disabled.
func ProvideSnapshotStore(cfg *config.Config) repository.SnapshotCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	var backend icache.BytesCache
	if cfg.Cache.Backend == "redis" {
		backend = icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	} else {
		backend = icache.NewTTLCache()
	}
	return internalrepo.NewSnapshotStore(backend)
}

// ProvidePublisher creates the Kafka snapshot publisher, or nil when
// disabled.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(false),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideHub creates the websocket broadcast hub.
func ProvideHub(logger *applogger.Logger) *api.Hub {
	return api.NewHub(logger)
}

// ProvideRefresher creates the periodic refresh loop.
func ProvideRefresher(
	builder *usecase.SnapshotBuilder,
	store repository.SnapshotCache,
	pub repository.Publisher,
	hub *api.Hub,
	cfg *config.Config,
	logger *applogger.Logger,
) *usecase.Refresher {
	return usecase.NewRefresher(builder, store, pub, hub, cfg.Refresh.Interval, cfg.Cache.TTL, logger)
}

// ProvideHandler creates the Echo API handler.
func ProvideHandler(
	logger *applogger.Logger,
	builder *usecase.SnapshotBuilder,
	ranker *usecase.Ranker,
	store repository.SnapshotCache,
	cfg *config.Config,
	hub *api.Hub,
) *api.FundingEchoHandler {
	return api.NewFundingEchoHandler(logger, builder, ranker, store, cfg.Cache.TTL, hub)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler *api.FundingEchoHandler,
	refresher *usecase.Refresher,
	pub repository.Publisher,
	logger *applogger.Logger,
) *server.App {
	return server.New(cfg, handler, refresher, pub, logger)
}
