//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"smokeless/internal"
	"smokeless/internal/controllers"
	"smokeless/internal/providers"
	"smokeless/internal/scheduler"
	"smokeless/internal/services"
	"smokeless/internal/storage"
	"smokeless/internal/structures"
)

var storeSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,

	storage.NewZstdCompressor,
	storage.NewKeyValueStore,
	services.NewLogStore,
	wire.Bind(new(services.LogStoreInterface), new(*services.LogStore)),
	scheduler.NewScheduler,
)

func InitTracker(cfg *structures.CliFlags) (*internal.Tracker, func(), error) {

	wire.Build(
		storeSet,
		internal.NewTracker,
	)

	return nil, nil, nil
}

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		storeSet,
		providers.NewInstrumentedCacheProvider,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
