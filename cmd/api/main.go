package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vaidya/internal/catalog"
	"vaidya/internal/config"
	"vaidya/internal/db"
	"vaidya/internal/events"
	apihttp "vaidya/internal/http"
	"vaidya/internal/repository"
	"vaidya/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	templates, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("load therapy catalog", zap.Error(err))
	}
	logger.Info("therapy catalog loaded", zap.Int("templates", templates.Len()))

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = db.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Fatal("redis connect", zap.Error(err))
		}
		defer redisClient.Close()
	}

	var (
		moduleRepo     repository.ModuleRepository
		assessmentRepo repository.AssessmentRepository = repository.NewMemoryAssessmentRepository()
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("db schema", zap.Error(err))
		}
		moduleRepo = repository.NewPgModuleRepository(pool)
		assessmentRepo = repository.NewPgAssessmentRepository(pool)
	case config.StorageRedis:
		moduleRepo = repository.NewRedisModuleRepository(redisClient, cfg.ModuleTTL())
	case config.StorageSQLite:
		sqliteRepo, err := repository.NewSQLiteModuleRepository(cfg.SQLitePath)
		if err != nil {
			logger.Fatal("sqlite open", zap.Error(err))
		}
		defer sqliteRepo.Close()
		moduleRepo = sqliteRepo
	default:
		logger.Warn("using in-memory storage, modules are lost on restart")
		moduleRepo = repository.NewMemoryModuleRepository()
	}

	factory := service.NewTherapyModuleFactory(templates)
	moduleSvc := service.NewModuleService(factory, moduleRepo, logger)
	tracker := service.NewProgressTracker(moduleRepo, logger)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, logger)

	verifier := service.NewTokenVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	if !verifier.Enabled() {
		logger.Warn("jwt secret not configured, patient routes are public")
	}

	if cfg.BookingEventsChannel != "" {
		listener := events.NewBookingListener(redisClient, cfg.BookingEventsChannel, moduleSvc, logger)
		go func() {
			if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("booking listener stopped", zap.Error(err))
			}
		}()
	}

	router := apihttp.NewRouter(logger, verifier,
		apihttp.NewAssessmentHandler(logger, assessmentSvc),
		apihttp.NewCatalogHandler(logger, templates),
		apihttp.NewModuleHandler(logger, moduleSvc, tracker),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("storage", cfg.StorageDriver),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
