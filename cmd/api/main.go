package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/seed"
	"github.com/pageza/recipebox/backend/internal/server"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/stats"
	"github.com/pageza/recipebox/backend/internal/store"
	"github.com/pageza/recipebox/backend/pkg/logging"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Setup("info")
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// run serves until a signal arrives or the server fails. Deferred cleanup
// always runs before it returns.
func run(cfg *config.Config) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Recipes start from the bundled samples unless SEED_FILE points elsewhere
	recipes := store.New()
	samples, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to load seed recipes: %w", err)
	}
	if err := seed.Into(recipes, samples); err != nil {
		return fmt.Errorf("failed to seed recipes: %w", err)
	}
	slog.Info("Recipes loaded", "count", recipes.Len(), "source", seedSource(cfg.SeedFile))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	recomputer := stats.NewRecomputer(cfg.StatsDelay, m)
	defer recomputer.Close()

	deps := api.Dependencies{
		Recipes: service.NewRecipeService(recipes, recomputer, m),
	}

	// Rate limiting is skipped when Redis is not available
	if cfg.RedisEnabled() {
		redisClient, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			slog.Warn("Rate limiting disabled", "error", err)
		} else {
			defer redisClient.Close()
			deps.RateLimiter = middleware.NewRecipeMutationRateLimiter(redisClient, cfg.RateLimitWindow, cfg.RateLimitMax)
		}
	}

	if cfg.ImageStorageEnabled() {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			slog.Warn("Image uploads disabled", "error", err)
		} else {
			deps.ImageStore = s3cfg
		}
	}

	srv := server.New(cfg, router.SetupRouter(router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Gatherer:    reg,
		API:         deps,
	}))

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		slog.Info("Starting server", "addr", cfg.Addr(), "env", cfg.Environment)
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		slog.Info("Received signal", "signal", sig.String())
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

func seedSource(path string) string {
	if path == "" {
		return "bundled"
	}
	return path
}
