//go:build wireinject
// +build wireinject

package di

import (
	"LiskPredict/pkg/config"
	"LiskPredict/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCacheService,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvidePredictionStore,
		ProvidePublisher,
		ProvidePriceHistory,
		ProvideTickStream,

		// Services and use cases
		ProvideSentimentAnalyzer,
		ProvideJobQueue,
		ProvideTickGate,
		ProvideTickCollector,
		ProvideKafkaTicksHandler,
		ProvidePredictionEngine,

		// HTTP and application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
