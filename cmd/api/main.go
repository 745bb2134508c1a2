package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/openlearn/coursehub/internal/api/http"
	"github.com/openlearn/coursehub/internal/api/http/handlers"
	"github.com/openlearn/coursehub/internal/auth"
	"github.com/openlearn/coursehub/internal/config"
	"github.com/openlearn/coursehub/internal/observability"
	"github.com/openlearn/coursehub/internal/persistence"
	"github.com/openlearn/coursehub/internal/repository"
	"github.com/openlearn/coursehub/internal/service"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	spentRepo := repository.NewSpentTokenRepository(redis.Client)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:       userRepo,
		SpentTokenRepo: spentRepo,
		Logger:         logger,
	})

	gate := auth.NewGate()
	courseService := service.NewCourseService(courseRepo, gate)

	cookies := auth.NewCookieWriter(cfg.App.Production())
	csrf := auth.NewCSRFManager(cookies, cfg.Auth.CSRFTokenTTLHours, logger)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(redis),
		Auth:           handlers.NewAuthHandler(authService, cookies, csrf),
		Admin:          handlers.NewAdminHandler(authService),
		Courses:        handlers.NewCoursesHandler(courseService),
		AuthMiddleware: authMiddleware,
		CSRF:           csrf,
		Gate:           gate,
	})

	go func() {
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
