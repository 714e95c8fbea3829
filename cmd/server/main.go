package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/refugee-innovation-hub/internal/api"
	"github.com/refugee-innovation-hub/internal/auth"
	"github.com/refugee-innovation-hub/internal/config"
	"github.com/refugee-innovation-hub/internal/database"
	"github.com/refugee-innovation-hub/internal/repository"
	"github.com/refugee-innovation-hub/internal/service"
	"github.com/refugee-innovation-hub/internal/session"
	"github.com/refugee-innovation-hub/internal/storage"
	"github.com/refugee-innovation-hub/pkg/logger"
	"github.com/rs/zerolog"
)

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Refugee Innovation Hub API server...")

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

	ctx := context.Background()

	// Initialize session store
	redisClient, err := session.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	sessions := session.NewRedisStore(redisClient, cfg.Session.TTL)

	// Initialize image storage
	files, err := newStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Upload.Backend).Msg("Failed to initialize upload storage")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, sessions, files, cfg, log)

	// Initialize router
	router := api.NewRouter(services, auth.DefaultPolicy(), db, cfg, log)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

func newStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storage.Storage, error) {
	if cfg.Upload.Backend == config.UploadBackendMinIO {
		log.Info().Str("endpoint", cfg.MinIO.Endpoint).Str("bucket", cfg.MinIO.Bucket).Msg("Using MinIO upload storage")
		return storage.NewMinIOStorage(ctx, cfg.MinIO)
	}
	log.Info().Str("dir", cfg.Upload.Dir).Msg("Using local upload storage")
	return storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.PublicPath)
}
