package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/BumsooCho/trendix-ai-server/internal/config"
	"github.com/BumsooCho/trendix-ai-server/internal/db"
	"github.com/BumsooCho/trendix-ai-server/internal/handler"
	"github.com/BumsooCho/trendix-ai-server/internal/middleware"
	"github.com/BumsooCho/trendix-ai-server/internal/repository"
	"github.com/BumsooCho/trendix-ai-server/internal/router"
	"github.com/BumsooCho/trendix-ai-server/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "trendix-api", cfg.LogIPSalt)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)

	trendRepo := repository.NewTrendRepo(pool)
	categoryRepo := repository.NewCategoryRepo(pool)
	channelRepo := repository.NewChannelRepo(pool)
	statsRepo := repository.NewStatsRepo(pool)

	surgeSvc := service.NewSurgeService(trendRepo, cache)
	trendSvc := service.NewTrendService(categoryRepo, statsRepo, cache)
	channelSvc := service.NewChannelService(channelRepo, cache)

	// Background surge refresh driven by ingestion notifications
	worker := service.NewRefreshWorker(pool, surgeSvc, cache)
	go worker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "Trendix API",
		ServerHeader: "Trendix",
	})

	router.Setup(app, &router.Handlers{
		Trend:   handler.NewTrendHandler(surgeSvc, trendSvc, cfg.Platforms),
		Channel: handler.NewChannelHandler(channelSvc),
		Stats:   handler.NewStatsHandler(trendSvc),
		Health:  handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		_ = app.Shutdown()
	}()

	log.Printf("Trendix Go backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
