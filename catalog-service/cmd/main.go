package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"productmanagement/catalog-service/internal/app/catalog/config"
	"productmanagement/catalog-service/internal/app/catalog/database"
	"productmanagement/catalog-service/internal/app/catalog/handler"
	"productmanagement/catalog-service/internal/app/catalog/repository"
	"productmanagement/catalog-service/internal/app/catalog/service"
	"productmanagement/catalog-service/internal/app/catalog/util"
	"productmanagement/pkg/logger"

	"github.com/gin-gonic/gin"
)

const serviceName = "catalog-service"

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	cfg, err := config.Load()
	if err != nil {
		logger.Init(serviceName, "info")
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// === ИНИЦИАЛИЗАЦИЯ ЛОГГЕРА ===
	logger.Init(serviceName, cfg.Log.Level)
	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Log.LogstashAddr).Msg("Logstash unavailable, logging to stdout only")
		}
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// === ПОДКЛЮЧЕНИЕ К POSTGRESQL ===
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	sqlDB := database.OpenSQL(pool)
	defer sqlDB.Close()
	logger.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Successfully connected to PostgreSQL")

	if err := database.Migrate(sqlDB); err != nil {
		logger.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	gormDB, err := database.OpenGorm(sqlDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize gorm")
	}

	// === КЕШ КАТЕГОРИЙ ===
	var cache util.CategoryCache = util.NopCache{}
	if cfg.Redis.Enabled {
		redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		cache = redisClient
		logger.Info().Str("addr", cfg.Redis.Address()).Msg("Successfully connected to Redis")
	}

	// === СОБЫТИЯ О ТОВАРАХ ===
	var publisher util.MessagePublisher = util.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaProducer.Close()
		publisher = kafkaProducer
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Kafka producer initialized")
	}

	// === СЛОИ ПРИЛОЖЕНИЯ ===
	categoryRepo := repository.NewCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	catalogService := service.NewCatalogService(categoryRepo, productRepo, cache, publisher, cfg.Redis.TTL)

	if cfg.Database.Seed {
		inserted, err := database.Seed(ctx, categoryRepo)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed categories")
		}
		if inserted {
			catalogService.InvalidateCategories(ctx)
		}
	}

	catalogHandler := handler.NewCatalogHandler(catalogService, cfg.Server.BasePath)
	router := handler.SetupRoutes(catalogHandler, handler.RouterConfig{
		BasePath:     cfg.Server.BasePath,
		AllowOrigins: cfg.CORS.AllowOrigins,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Str("base_path", cfg.Server.BasePath).Msg("Starting Catalog Service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Catalog Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Catalog Service stopped gracefully")
}
