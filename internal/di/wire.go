//go:build wireinject
// +build wireinject

package di

import (
	"FundRadar/pkg/config"
	"FundRadar/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Extraction engine
		ProvideTables,
		ProvideExtractor,

		// Venue sources
		ProvideAggregatorSource,
		ProvideLimiter,
		ProvideMarketSource,

		// Use cases
		ProvideOrchestrator,
		ProvideSnapshotBuilder,
		ProvideRanker,

		// Cache, publishing and push
		ProvideSnapshotStore,
		ProvidePublisher,
		ProvideHub,
		ProvideRefresher,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
