package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campus-feed-api/internal/ai"
	"github.com/campus-feed-api/internal/api"
	"github.com/campus-feed-api/internal/cache"
	"github.com/campus-feed-api/internal/config"
	"github.com/campus-feed-api/internal/database"
	"github.com/campus-feed-api/internal/repository"
	"github.com/campus-feed-api/internal/service"
	"github.com/campus-feed-api/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development
	envErr := godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	if envErr != nil {
		log.Debug().Err(envErr).Msg("No .env file loaded")
	}
	log.Info().Msg("Starting campus feed API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	probes := []api.Probe{{Name: "database", Check: db.HealthCheck}}

	// Initialize classifier
	var classifier ai.Classifier = ai.Fallback{}
	if cfg.AI.Enabled() {
		var resultCache ai.ResultCache
		if cfg.Cache.Addr != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			redisCache, err := cache.NewRedisCache(ctx, cfg.Cache, log)
			cancel()
			if err != nil {
				log.Warn().Err(err).Msg("Inference result cache unavailable, continuing without it")
			} else {
				defer redisCache.Close()
				resultCache = redisCache
				probes = append(probes, api.Probe{Name: "cache", Check: redisCache.Ping})
			}
		}
		classifier = ai.NewClient(cfg.AI, resultCache, log)
		log.Info().Str("model", cfg.AI.Model).Msg("Live inference client enabled")
	} else {
		log.Warn().Msg("AI_API_KEY not set, using rule-based classification only")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, classifier, log)

	// Initialize router
	router := api.NewRouter(services, cfg, log, probes...)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
