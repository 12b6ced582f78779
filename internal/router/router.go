package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/BumsooCho/trendix-ai-server/internal/handler"
	"github.com/BumsooCho/trendix-ai-server/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Trend   *handler.TrendHandler
	Channel *handler.ChannelHandler
	Stats   *handler.StatsHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	surgeLimiter := middleware.NewSurgeRateLimiter()
	categoryLimiter := middleware.NewCategoryRateLimiter()
	channelLimiter := middleware.NewChannelRateLimiter()
	statsLimiter := middleware.NewStatsRateLimiter()

	// Trend routes
	api.Get("/trends/videos/surge", h.Trend.GetSurgeVideos, surgeLimiter.Handler())
	api.Get("/trends/categories/hot", h.Trend.GetHotCategories, categoryLimiter.Handler())
	api.Get("/trends/categories", h.Trend.ListCategories, categoryLimiter.Handler())
	api.Get("/trends/categories/:category/recommendations", h.Trend.GetRecommendations, categoryLimiter.Handler())

	// Channel routes
	api.Get("/channels/:channelId", h.Channel.GetByChannelID, channelLimiter.Handler())

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, statsLimiter.Handler())
}
