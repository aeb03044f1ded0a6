package components

import (
	"rategrid/internal/handler"
	"rategrid/internal/handler/api"
	"rategrid/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRateHandler,
		api.NewDistributionHandler,
		api.NewQuoteHandler,
		api.NewInventoryHandler,
		api.NewBookingHandler,
		api.NewChannelHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
