//go:build wireinject
// +build wireinject

package di

import (
	"WorldSim/pkg/config"
	"WorldSim/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideRedisCache,
		ProvideKafkaProducer,

		// Domain
		ProvideDataset,
		ProvideAnalyzer,
		ProvideCache,
		ProvideRunEvents,
		ProvideSimulate,
		ProvideBriefingClient,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
