package components

import (
	"rategrid/internal/pkg/clock"
	"rategrid/internal/pkg/config"
	"rategrid/internal/usecase/commands"
	"rategrid/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewSystemClock,
	func(cfg config.Config) config.DistributionConfig { return cfg.Distribution },
	func(cfg config.Config) config.InventoryConfig { return cfg.Inventory },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRateUseCase,
		commands.NewDistributionUseCase,
		commands.NewInventoryUseCase,
		commands.NewBookingUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRateQueries,
		queries.NewInventoryQueries,
		queries.NewBookingQueries,
		queries.NewQuoteQueries,
	),
)
