package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/console-service/internal/api/http"
	"github.com/spec-kit/console-service/internal/api/http/handlers"
	"github.com/spec-kit/console-service/internal/auth"
	"github.com/spec-kit/console-service/internal/classifier"
	"github.com/spec-kit/console-service/internal/config"
	"github.com/spec-kit/console-service/internal/domain"
	"github.com/spec-kit/console-service/internal/events"
	"github.com/spec-kit/console-service/internal/observability"
	"github.com/spec-kit/console-service/internal/persistence"
	"github.com/spec-kit/console-service/internal/repository"
	"github.com/spec-kit/console-service/internal/service"
	"github.com/spec-kit/console-service/internal/worker"
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

	snapshots := persistence.NewRedisSnapshotStore(cfg.Redis, logger)
	defer snapshots.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	callRepo := repository.NewCallRepository()
	ticketRepo := repository.NewTicketRepository()
	userRepo := repository.NewUserRepository()
	archive := repository.NewCallArchive(pg.PoolHandle())

	engine := classifier.New(nil, domain.CallType(cfg.Console.DefaultCallType))

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	callService := service.NewCallService(service.CallDependencies{
		CallRepo:   callRepo,
		Archive:    archive,
		Classifier: engine,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	stateService := service.NewStateService(service.StateDependencies{
		CallRepo:   callRepo,
		TicketRepo: ticketRepo,
		UserRepo:   userRepo,
		Snapshots:  snapshots,
		KeyPrefix:  cfg.Console.SnapshotKeyPrefix,
		Logger:     logger,
	})

	auditService := service.NewAuditService(dispatcher, logger, metrics)
	auditService.RegisterHandlers()

	if cfg.Console.SeedDemoTickets {
		if err := ticketService.SeedDemoTickets(ctx); err != nil {
			logger.Warn("demo ticket seed failed", zap.Error(err))
		}
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, snapshots),
		Auth:           handlers.NewAuthHandler(authService),
		Calls:          handlers.NewCallsHandler(callService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Admin:          handlers.NewAdminHandler(stateService),
		AuthMiddleware: authMiddleware,
	})

	ticker := worker.NewDurationTicker(callService, cfg.Console.TickInterval(), logger)
	go ticker.Start(ctx)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
