package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hirenow-api/internal/api/http"
	"github.com/spec-kit/hirenow-api/internal/api/http/handlers"
	"github.com/spec-kit/hirenow-api/internal/auth"
	"github.com/spec-kit/hirenow-api/internal/config"
	"github.com/spec-kit/hirenow-api/internal/events"
	"github.com/spec-kit/hirenow-api/internal/firebase"
	"github.com/spec-kit/hirenow-api/internal/observability"
	"github.com/spec-kit/hirenow-api/internal/otp"
	"github.com/spec-kit/hirenow-api/internal/persistence"
	"github.com/spec-kit/hirenow-api/internal/repository"
	"github.com/spec-kit/hirenow-api/internal/service"
	"github.com/spec-kit/hirenow-api/internal/sms"
	"github.com/spec-kit/hirenow-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	workerRepo := repository.NewWorkerRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	var challengeStore otp.ChallengeStore
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not provided; using in-memory OTP store")
		challengeStore = otp.NewMemoryStore()
	} else {
		challengeStore = otp.NewRedisStore(redis.Client)
	}
	otpManager := otp.NewManager(challengeStore, cfg.OTP.CodeLength, cfg.OTP.Expiry())

	// the verifier is constructed here, once, and injected everywhere it is
	// needed; no component initializes it on first use
	verifier := firebase.NewClient(cfg.Firebase.ProjectID)

	dispatcher := events.NewInMemoryDispatcher()
	smsProvider := sms.NewProvider(cfg.SMS, logger)
	worker.StartSMSWorker(dispatcher, smsProvider, logger)

	identityService := service.NewIdentityService(service.IdentityDependencies{
		UserRepo:     userRepo,
		WorkerRepo:   workerRepo,
		CategoryRepo: categoryRepo,
		BcryptCost:   cfg.Auth.BcryptCost,
	})
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		Identity:   identityService,
		OTPManager: otpManager,
		Verifier:   verifier,
		Dispatcher: dispatcher,
	})
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		UserRepo:     userRepo,
		WorkerRepo:   workerRepo,
		CategoryRepo: categoryRepo,
		ReviewRepo:   reviewRepo,
	})

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(directoryService),
		Workers:        handlers.NewWorkersHandler(directoryService),
		Categories:     handlers.NewCategoriesHandler(directoryService),
		Reviews:        handlers.NewReviewsHandler(directoryService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
