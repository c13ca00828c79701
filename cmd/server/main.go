package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petflu/service-storefront/internal/application"
	"github.com/petflu/service-storefront/internal/catalogsource"
	"github.com/petflu/service-storefront/internal/config"
	bookingDomain "github.com/petflu/service-storefront/internal/domain/booking"
	"github.com/petflu/service-storefront/internal/domain/catalog"
	"github.com/petflu/service-storefront/internal/events"
	"github.com/petflu/service-storefront/internal/handler"
	"github.com/petflu/service-storefront/internal/logger"
	"github.com/petflu/service-storefront/internal/metrics"
	"github.com/petflu/service-storefront/internal/middleware"
	"github.com/petflu/service-storefront/internal/repository"
	"github.com/petflu/service-storefront/internal/storage"
	"github.com/petflu/service-storefront/internal/view"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const serviceName = "service-storefront"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("storage_driver", cfg.StorageDriver),
	)

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New("storefront", reg)

	// Open session storage
	store, err := openStore(cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	// Load the catalog. A failed load leaves the storefront running with an empty catalog.
	var source catalogsource.Source
	cat := catalog.Empty()
	source, err = catalogsource.New(cfg.CatalogConfig.Source, cfg.CatalogConfig.Timeout)
	if err != nil {
		log.Error("invalid catalog source", zap.String("source", cfg.CatalogConfig.Source), zap.Error(err))
	} else {
		loadCtx, loadCancel := context.WithTimeout(context.Background(), cfg.CatalogConfig.Timeout)
		loaded, err := application.NewCatalogLoader(source, m, log).Load(loadCtx)
		loadCancel()
		if err != nil {
			log.Error("catalog unavailable, serving empty storefront", zap.Error(err))
		} else {
			cat = loaded
		}
	}

	// Initialize event publisher
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaConfig.Enabled {
		publisher = events.NewProducer(cfg.KafkaConfig.Brokers, log)
	}
	defer func() { _ = publisher.Close() }()

	// Initialize repositories
	cartRepo := repository.NewStoreCartRepository(store)
	bookingRepo := repository.NewStoreBookingRepository(store)

	// Initialize application service
	sessions := application.NewSessionStore(
		cartRepo,
		bookingRepo,
		cfg.SessionConfig.TTL,
		cfg.SessionConfig.CleanupInterval,
		m,
	)
	storefrontService := application.NewStorefrontService(
		cat,
		sessions,
		cartRepo,
		bookingRepo,
		bookingDomain.NewStandardPricingStrategy(cat),
		publisher,
		m,
		log,
	)

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatal("failed to build view renderer", zap.Error(err))
	}

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Health and metrics
	handler.NewHealthHandler(store, reg, serviceName).RegisterRoutes(router)

	// Serve the datasets and images when the catalog comes from a local directory
	if fsSource, ok := source.(*catalogsource.FSSource); ok {
		router.StaticFS("/data", http.FS(fsSource.FS()))
	}

	// Register session-scoped routes
	api := router.Group("")
	api.Use(middleware.SessionMiddleware(middleware.SessionOptions{
		CookieName: cfg.SessionConfig.CookieName,
		MaxAge:     int(cfg.SessionConfig.CookieMaxAge.Seconds()),
		Secure:     cfg.SessionConfig.CookieSecure,
	}))
	handler.NewCatalogHandler(storefrontService).RegisterRoutes(api)
	handler.NewCartHandler(storefrontService).RegisterRoutes(api)
	handler.NewBookingHandler(storefrontService).RegisterRoutes(api)
	handler.NewFragmentHandler(storefrontService, renderer, log).RegisterRoutes(api)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}

// openStore connects the configured storage driver.
func openStore(cfg *config.ServiceConfig, log *zap.Logger) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		gormLevel := gormlogger.Warn
		if cfg.AppEnv == "development" {
			gormLevel = gormlogger.Info
		}
		db, err := gorm.Open(postgres.Open(cfg.DBConfig.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormLevel),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store := storage.NewGormStore(db)
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to run auto-migration: %w", err)
		}
		log.Info("connected to postgres", zap.String("host", cfg.DBConfig.Host))
		return store, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("connected to redis", zap.String("addr", cfg.RedisConfig.Addr))
		return storage.NewRedisStore(client, cfg.RedisConfig.KeyPrefix, cfg.RedisConfig.TTL), nil

	default:
		log.Warn("using in-memory storage; session state is lost on restart")
		return storage.NewMemoryStore(), nil
	}
}
