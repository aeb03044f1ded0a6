package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rategrid/internal/domain/identity"
	"rategrid/internal/handler/api"
	"rategrid/internal/handler/middleware"
	"rategrid/internal/infra/observability"
	"rategrid/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	registry *prometheus.Registry,
	rateHandler *api.RateHandler,
	distributionHandler *api.DistributionHandler,
	quoteHandler *api.QuoteHandler,
	inventoryHandler *api.InventoryHandler,
	bookingHandler *api.BookingHandler,
	channelHandler *api.ChannelHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, registry, rateHandler, distributionHandler, quoteHandler, inventoryHandler, bookingHandler, channelHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	registry *prometheus.Registry,
	rateHandler *api.RateHandler,
	distributionHandler *api.DistributionHandler,
	quoteHandler *api.QuoteHandler,
	inventoryHandler *api.InventoryHandler,
	bookingHandler *api.BookingHandler,
	channelHandler *api.ChannelHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(observability.MetricsHandler(registry)))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Rate mutations and distribution need revenue_manager or above;
	// ledger maintenance needs property_manager or above. Reads, quotes
	// and booking traffic only need a valid token.
	revenueManager := authMiddleware.RequireRoleAtLeast(identity.RoleRevenueManager)
	propertyManager := authMiddleware.RequireRoleAtLeast(identity.RolePropertyManager)

	apiGroup := engine.Group("/api")
	{
		rates := apiGroup.Group("/rates")
		rates.Use(authMiddleware.RequireAuth())
		{
			addRoutes(rates, []route{
				{Method: http.MethodGet, Path: "", Handler: rateHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: rateHandler.Get},
				{Method: http.MethodGet, Path: "/:id/history", Handler: rateHandler.History},
				{Method: http.MethodPost, Path: "", Handler: rateHandler.Create, Mw: []gin.HandlerFunc{revenueManager}},
				{Method: http.MethodPatch, Path: "/:id", Handler: rateHandler.Update, Mw: []gin.HandlerFunc{revenueManager}},
				{Method: http.MethodDelete, Path: "/:id", Handler: rateHandler.Delete, Mw: []gin.HandlerFunc{revenueManager}},
				{Method: http.MethodPost, Path: "/:id/duplicate", Handler: rateHandler.Duplicate, Mw: []gin.HandlerFunc{revenueManager}},
				{Method: http.MethodPost, Path: "/:id/transition", Handler: rateHandler.Transition, Mw: []gin.HandlerFunc{revenueManager}},
				{Method: http.MethodPost, Path: "/:id/distribute", Handler: distributionHandler.Distribute, Mw: []gin.HandlerFunc{revenueManager}},
				{Method: http.MethodPost, Path: "/:id/preview", Handler: distributionHandler.Preview, Mw: []gin.HandlerFunc{revenueManager}},
				{Method: http.MethodPost, Path: "/conflicts/resolve", Handler: distributionHandler.ResolveConflict, Mw: []gin.HandlerFunc{revenueManager}},
			})
		}

		groups := apiGroup.Group("/groups")
		groups.Use(authMiddleware.RequireAuth())
		{
			addRoutes(groups, []route{
				{Method: http.MethodPost, Path: "/:id/sync", Handler: distributionHandler.SyncGroup, Mw: []gin.HandlerFunc{revenueManager}},
			})
		}

		quotes := apiGroup.Group("/quotes")
		quotes.Use(authMiddleware.RequireAuth())
		{
			addRoutes(quotes, []route{
				{Method: http.MethodPost, Path: "", Handler: quoteHandler.Quote},
			})
		}

		inventory := apiGroup.Group("/inventory")
		inventory.Use(authMiddleware.RequireAuth())
		{
			addRoutes(inventory, []route{
				{Method: http.MethodPost, Path: "/reserve", Handler: inventoryHandler.Reserve},
				{Method: http.MethodPost, Path: "/release", Handler: inventoryHandler.Release},
				{Method: http.MethodGet, Path: "/calendar", Handler: inventoryHandler.Calendar},
				{Method: http.MethodPost, Path: "/block", Handler: inventoryHandler.Block, Mw: []gin.HandlerFunc{propertyManager}},
				{Method: http.MethodPost, Path: "/rates", Handler: inventoryHandler.SetRates, Mw: []gin.HandlerFunc{propertyManager}},
				{Method: http.MethodPost, Path: "/materialize", Handler: inventoryHandler.Materialize, Mw: []gin.HandlerFunc{propertyManager}},
			})
		}

		channel := apiGroup.Group("/channel")
		channel.Use(authMiddleware.RequireAuth())
		{
			addRoutes(channel, []route{
				{Method: http.MethodGet, Path: "/snapshot", Handler: channelHandler.Snapshot},
				{Method: http.MethodPost, Path: "/ack", Handler: channelHandler.Ack},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.Cancel},
			})
		}

		// Webhooks authenticate by payload signature, not by token, so the
		// group carries the signature check instead of RequireAuth.
		webhooks := apiGroup.Group("/webhooks")
		webhooks.Use(middleware.WebhookSignature(cfg.Webhook))
		{
			addRoutes(webhooks, []route{
				{Method: http.MethodPost, Path: "/:channel", Handler: channelHandler.Webhook},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
