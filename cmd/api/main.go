package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/swaadapp/swaad/backend/config"
	"github.com/swaadapp/swaad/backend/internal/catalog"
	"github.com/swaadapp/swaad/backend/internal/database"
	"github.com/swaadapp/swaad/backend/internal/pkg/logger"
	"github.com/swaadapp/swaad/backend/internal/server"
	"github.com/swaadapp/swaad/backend/internal/service"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	gin.SetMode(cfg.Server.Mode)

	datasetPath := catalog.ResolvePath(cfg.Dataset.Path)
	cat, err := catalog.Load(datasetPath)
	if err != nil {
		zlog.Fatal("failed to load recipe dataset",
			zap.String("path", datasetPath), zap.Error(err))
	}
	zlog.Info("recipe dataset loaded",
		zap.String("path", datasetPath), zap.Int("recipes", cat.Len()))

	// Redis is optional: without it the API still serves, just with no
	// extraction cache and no rate limiting.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = database.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			zlog.Warn("redis unavailable, caching and rate limiting disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer func() { _ = redisClient.Close() }()
		}
	}

	var vision *service.VisionService
	if cfg.Vision.Enabled() {
		vision = service.NewVisionService(cfg.Vision, redisClient, zlog)
	} else {
		zlog.Warn("GEMINI_API_KEY not set, menu image extraction disabled")
	}

	srv := server.New(cfg, cat, redisClient, vision, zlog)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zlog.Info("received signal", zap.Stringer("signal", sig))
	}

	zlog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server shutdown error", zap.Error(err))
	}
	zlog.Info("server stopped")
}
