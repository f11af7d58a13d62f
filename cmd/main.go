package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"backoffice-service/internal/config"
	"backoffice-service/internal/database/postgres"
	"backoffice-service/internal/database/redis"
	"backoffice-service/internal/event"
	"backoffice-service/internal/handlers"
	"backoffice-service/internal/repository"
	"backoffice-service/internal/services"
	"backoffice-service/internal/worker"

	"github.com/gofiber/fiber/v3"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.New()

	db, err := postgres.Connect(cfg.PostgresCfg)
	if err != nil {
		slog.Error("failed to connect to postgres, retrying in background", "error", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	} else if err := postgres.ApplySchema(db, "schema.sql"); err != nil {
		slog.Error("failed to apply schema", "error", err)
	}

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// The broker is optional; billing still runs without notifications.
	var notifier services.BillingNotifier
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		slog.Warn("RabbitMQ unavailable, billing events disabled", "error", err)
	} else {
		defer rabbitConn.Close()
		notifier = event.NewBillingPublisher(rabbitConn)
	}

	personRepo := repository.NewPersonRepository(db)
	clientRepo := repository.NewClientRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	agentRepo := repository.NewAgentRepository(db)
	managerRepo := repository.NewManagerRepository(db)
	productRepo := repository.NewProductRepository(db)
	coverageRepo := repository.NewCoverageRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	diseaseRepo := repository.NewDiseaseRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient.GetClient(), time.Duration(cfg.SessionTTL)*time.Minute)

	partyService := services.NewPartyService(personRepo, clientRepo, teamRepo, agentRepo, managerRepo, userRepo)
	catalogService := services.NewCatalogService(productRepo, coverageRepo, vehicleRepo, diseaseRepo, clientRepo)
	policyService := services.NewPolicyService(policyRepo, productRepo, coverageRepo, agentRepo, diseaseRepo, clientRepo)
	paymentService := services.NewPaymentService(paymentRepo, policyRepo)
	claimService := services.NewClaimService(claimRepo, policyRepo)
	billingService := services.NewBillingService(policyRepo, paymentRepo, notifier)
	tokenService := services.NewTokenService(userRepo, sessionRepo, cfg.JWTSecret, time.Duration(cfg.SessionTTL)*time.Minute)
	userService := services.NewUserService(userRepo, sessionRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	pool := worker.NewWorkingPool(2, 16)
	wg.Add(1)
	go pool.Start(ctx, &wg)

	scheduler := worker.NewScheduler(pool)
	if err := scheduler.Register("billing-run", cfg.BillingCron, billingService.Run); err != nil {
		slog.Error("failed to schedule billing run", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	middleware := handlers.NewMiddleware(tokenService)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Backoffice service is healthy")
	})

	handlers.NewAuthHandler(tokenService, userService, middleware).Register(app)
	handlers.NewPartyHandler(partyService, middleware).Register(app)
	handlers.NewCatalogHandler(catalogService, middleware).Register(app)
	handlers.NewPolicyHandler(policyService, paymentService, middleware).Register(app)
	handlers.NewClaimHandler(claimService, middleware).Register(app)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server stopped", "error", err)
			cancel()
		}
	}()
	slog.Info("backoffice service started", "port", cfg.Port, "billing_cron", cfg.BillingCron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	scheduler.Stop(shutdownCtx)
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	cancel()
	wg.Wait()
	slog.Info("backoffice service stopped")
}
