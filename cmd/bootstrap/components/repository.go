package components

import (
	"rategrid/internal/infra/db"
	"rategrid/internal/infra/events"
	"rategrid/internal/infra/readstore"
	"rategrid/internal/infra/rediscache"
	"rategrid/internal/infra/repository"
	"rategrid/internal/pkg/config"
	"rategrid/internal/usecase/commands"
	"rategrid/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		// Write-side repositories
		fx.Annotate(
			repository.NewRateRepository,
			fx.As(new(commands.RateRepository)),
			fx.As(new(queries.RateSnapshotRepo)),
		),
		fx.Annotate(
			repository.NewInventoryRepository,
			fx.As(new(commands.InventoryRepository)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repository.NewPropertyRepository,
			fx.As(new(commands.PropertyRepository)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewRateReadStore,
			fx.As(new(queries.RateReadStore)),
		),
		fx.Annotate(
			readstore.NewInventoryReadStore,
			fx.As(new(queries.InventoryReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Redis-backed snapshot cache
		fx.Annotate(
			NewRateCache,
			fx.As(new(commands.RateCache)),
			fx.As(new(queries.RateSnapshotCache)),
		),
		// The AMQP publisher doubles as the property gateway: a rate push
		// is a message on the sync queue the property adapters consume.
		fx.Annotate(
			func(p *events.Publisher) *events.Publisher { return p },
			fx.As(new(commands.EventPublisher)),
			fx.As(new(commands.PropertyGateway)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewRateCache(client *redis.Client, cfg config.Config) *rediscache.RateCache {
	return rediscache.NewRateCache(client, cfg.Redis.RateTTL)
}
