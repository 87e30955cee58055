package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"finsakhi-server/internal/config"
	"finsakhi-server/internal/content"
	"finsakhi-server/internal/handler"
	appLogger "finsakhi-server/internal/logger"
	appMiddleware "finsakhi-server/internal/middleware"
	"finsakhi-server/internal/repository"
	"finsakhi-server/internal/service"
	"finsakhi-server/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	log.Println("Starting FinGame server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		// zap is not up yet, use the standard logger
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := appLogger.New(appLogger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	// Story content. A content defect is fatal here: players must never see
	// a broken graph.
	store, err := content.Load(cfg.ContentFile, logger)
	if err != nil {
		logger.Fatal("Failed to load story content", zap.String("file", cfg.ContentFile), zap.Error(err))
	}
	if err := store.Validate(); err != nil {
		logger.Fatal("Story content failed validation", zap.Error(err))
	}
	logger.Info("Story content validated", zap.String("file", cfg.ContentFile))

	// Persistence
	var (
		sessionRepo      repository.SessionRepository
		gamificationRepo repository.GamificationRepository
	)
	if cfg.UsesPostgres() {
		dbPool, err := setupDatabase(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer dbPool.Close()
		logger.Info("Connected to PostgreSQL")

		if err := runMigrations(cfg); err != nil {
			logger.Fatal("Failed to run database migrations", zap.Error(err))
		}
		logger.Info("Database migrations applied")

		sessionRepo = repository.NewPgSessionRepository(dbPool, logger)
		gamificationRepo = repository.NewPgGamificationRepository(dbPool, logger)
	} else {
		logger.Warn("DB_HOST not set, using in-memory session store (development mode)")
		sessionRepo = repository.NewMemorySessionRepository()
		gamificationRepo = repository.NewMemoryGamificationRepository()
	}

	if cfg.UsesRedis() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cancel()
		logger.Info("Connected to Redis, session cache enabled", zap.String("addr", cfg.RedisAddr))

		sessionRepo = repository.NewRedisSessionCache(sessionRepo, redisClient, cfg.SessionCacheTTL, logger)
	}

	// Wiring
	gameService := service.NewGameService(store, sessionRepo, gamificationRepo, cfg.SessionHistoryLimit, logger)
	gameHandler := handler.NewGameHandler(gameService, logger)

	// Echo setup
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(appMiddleware.RequestLogger(logger))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	gameHandler.RegisterRoutes(e)

	go func() {
		logger.Info("FinGame server listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown signal received, draining...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}

	logger.Info("FinGame server stopped")
}

// setupDatabase initializes the pgx connection pool.
func setupDatabase(cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MaxConnIdleTime = cfg.DBIdleTimeout

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	dbPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	logger.Debug("Database pool configured", zap.Int("maxConns", cfg.DBMaxConns))
	return dbPool, nil
}

// runMigrations applies the embedded schema migrations.
func runMigrations(cfg *config.Config) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	// The pgx/v5 migrate driver registers the pgx5 URL scheme.
	migrateURL := strings.Replace(cfg.GetDSN(), "postgres://", "pgx5://", 1)
	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
