package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dpamis/procurement-api/internal/application/auth"
	"github.com/dpamis/procurement-api/internal/application/notify"
	"github.com/dpamis/procurement-api/internal/application/usecase"
	"github.com/dpamis/procurement-api/internal/infrastructure/mail"
	"github.com/dpamis/procurement-api/internal/infrastructure/postgres"
	httpRouter "github.com/dpamis/procurement-api/internal/interfaces/http"
	"github.com/dpamis/procurement-api/pkg/config"
	"github.com/dpamis/procurement-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	requestRepo := postgres.NewPublicRequestRepository(pool)

	otpTTL := time.Duration(cfg.Activation.OTPMinutes) * time.Minute
	sender := mail.NewSender(cfg.SMTP, otpTTL)
	dispatcher := notify.NewDispatcher(sender, log, 64)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:   cfg.JWT.Secret,
		ExpHours: cfg.JWT.ExpHours,
		Issuer:   cfg.JWT.Issuer,
	})
	approvalUC := usecase.NewApprovalUseCase(userRepo, dispatcher, usecase.ActivationConfig{
		BaseURL: cfg.Activation.BaseURL,
		OTPTTL:  otpTTL,
	})
	requestUC := usecase.NewPublicRequestUseCase(requestRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ApprovalUC:      approvalUC,
		PublicRequestUC: requestUC,
		UserRepo:        userRepo,
		JWTSecret:       cfg.JWT.Secret,
		LoginURL:        cfg.Activation.LoginURL,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	// Drain queued mail before exiting.
	dispatcher.Close()

	log.Info().Msg("application stopped")
}
