// Package main is the entry point for the PDFHustle API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/config"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/database"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/handlers"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/logger"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/middleware"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/router"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/converter"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/usage"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/worker"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		// The logger isn't configured yet; the zerolog default still writes JSON to stderr.
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}

	logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "pdfhustle-api"})
	log.Info().Str("version", Version).Msg("🚀 PDFHustle API starting...")
	log.Info().
		Str("port", cfg.Port).
		Int("workers", cfg.WorkerCount).
		Str("gin_mode", cfg.GinMode).
		Float64("row_tolerance", cfg.RowTolerance).
		Msg("📋 Config loaded")

	gin.SetMode(cfg.GinMode)

	// Step 2: Connect to Database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("✅ Database connected")

	if err := db.RunMigrations("migrations"); err != nil {
		log.Fatal().Err(err).Msg("❌ Migration failed")
	}

	// Step 3: Usage counter (Redis when configured, else Postgres)
	var counter usage.Counter = usage.NewDBCounter(db)
	if cfg.RedisURL != "" {
		rc, err := usage.NewRedisCounter(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to connect to Redis")
		}
		defer rc.Close()
		counter = rc
		log.Info().Msg("✅ Usage counters in Redis")
	} else {
		log.Info().Msg("⚠️  No REDIS_URL set, counting usage from the conversions table")
	}

	// Step 4: Create and Start the Conversion Pool
	pool := worker.NewPool(cfg.WorkerCount, cfg.JobQueueSize)
	pool.Start()
	defer pool.Stop()

	if cfg.AdminAPIKey != "" {
		log.Info().Msg("✅ Admin API key configured (API key creation protected)")
	} else {
		log.Warn().Msg("⚠️  No admin API key set (API key creation is open, set ADMIN_API_KEY in production)")
	}

	// Step 5: Setup HTTP Router
	owner := middleware.OwnerOverride{KeyID: cfg.OwnerAPIKeyID, KeyPrefix: cfg.OwnerAPIKeyPrefix}
	rateLimiter := middleware.NewRateLimiter(cfg.DefaultRateLimit, owner)
	defer rateLimiter.Stop()

	h := &handlers.Handler{
		DB:               db,
		Pool:             pool,
		Converter:        converter.New(cfg.RowTolerance),
		Meter:            usage.NewMeter(counter, cfg.FreeDailyLimit),
		Owner:            owner,
		AdminAPIKey:      cfg.AdminAPIKey,
		DefaultRateLimit: cfg.DefaultRateLimit,
		MaxUploadBytes:   cfg.MaxUploadBytes,
	}
	r := router.Setup(h, router.Options{
		Credentials:    db,
		RateLimiter:    rateLimiter,
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Step 6: Start the HTTP Server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second, // large uploads
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("🌐 Server listening on http://localhost:%s", cfg.Port)
		log.Info().Msgf("📖 API docs: http://localhost:%s/api/docs", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("❌ Server failed")
		}
	}()

	// Step 7: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("🛑 Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Server forced to shutdown")
	}

	log.Info().Msg("👋 Server stopped. Goodbye!")
}
