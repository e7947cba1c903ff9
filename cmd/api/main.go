package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artesano-backend/config"
	"artesano-backend/internal/delivery/http/middleware"
	v1 "artesano-backend/internal/delivery/http/v1"
	"artesano-backend/internal/infrastructure/cache"
	"artesano-backend/internal/mailer"
	"artesano-backend/internal/mailing"
	"artesano-backend/internal/repository/postgres"
	"artesano-backend/internal/usecase"
	"artesano-backend/pkg/logger"
	"artesano-backend/pkg/storage"

	"github.com/NYTimes/gziphandler"
)

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Successfully connected to PostgreSQL")

	catalogRepo := postgres.NewCatalogRepository(pgxPool)

	// In-memory cache: default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// Set up Router
	mux := http.NewServeMux()

	// --- Modules Initialization ---

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(catalogRepo, memCache, cfg.CacheCatalogTTL)
	catalogHandler := v1.NewCatalogHandler(catalogUC)

	// Search Module
	searchUC := usecase.NewSearchUsecase(catalogRepo, cfg.SearchMaxResults, cfg.SearchTimeout)
	searchHandler := v1.NewSearchHandler(searchUC)

	// Notification Module
	// The SMTP transport is constructed once and injected; each request is a
	// single delivery attempt through it.
	templateResolver := mailing.NewResolver()
	mailTransport := mailer.New(cfg)
	sender := fmt.Sprintf("%s <%s>", cfg.SenderName, cfg.SenderAddress)
	notificationUC := usecase.NewNotificationUsecase(templateResolver, mailTransport, sender, cfg.SendTimeout)
	notificationHandler := v1.NewNotificationHandler(notificationUC)

	// Storage Module (R2)
	r2Storage, err := storage.NewR2Storage(
		context.Background(),
		cfg.R2AccountID,
		cfg.R2AccessKeyID,
		cfg.R2AccessKeySecret,
		cfg.R2BucketName,
		cfg.R2PublicURL,
		cfg.R2UploadTimeout,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
	}
	uploadHandler := v1.NewUploadHandler(r2Storage, cfg.MaxUploadSizeMB)

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProductByID)
	mux.HandleFunc("GET /api/v1/search", searchHandler.Search)

	// Notifications
	mux.HandleFunc("POST /api/v1/notifications/email", notificationHandler.SendEmail)

	// Uploads
	mux.HandleFunc("POST /api/v1/upload", uploadHandler.UploadFile)

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "db": "connected"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Rate Limiter: 50 req/s, burst 100, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		50,
		100,
		time.Minute,
		3*time.Minute,
	)

	// Apply CORS, Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()
	log.Info().Msg("Server exited properly")
}
