package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CiscoDiscoMisco-source/auth-service/config"
	"github.com/CiscoDiscoMisco-source/auth-service/db"
	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/credential"
	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/domain"
	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/external"
	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/handler"
	repo "github.com/CiscoDiscoMisco-source/auth-service/internal/auth/repository/postgres"
	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/service"
	"github.com/CiscoDiscoMisco-source/auth-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	// The standard-role connection is mandatory; startup aborts without it.
	standard, err := db.Connect(ctx, db.Options{
		DSN:         cfg.DBURL,
		ProbeURL:    cfg.IdentityURL,
		Role:        db.RoleStandard,
		MaxAttempts: cfg.ConnectMaxAttempts,
		RetryDelay:  cfg.ConnectRetryDelay,
	})
	if err != nil {
		logger.Error("standard backend connection failed", "error", err)
		os.Exit(1)
	}
	defer standard.Pool.Close()

	// The elevated role degrades to nil instead of aborting; admin
	// operations then fail closed.
	var adminUsers domain.UserRepository
	var adminLedger domain.RevocationRepository
	if cfg.AdminDBURL != "" {
		elevated, err := db.Connect(ctx, db.Options{
			DSN:         cfg.AdminDBURL,
			ProbeURL:    cfg.IdentityURL,
			Role:        db.RoleElevated,
			MaxAttempts: cfg.ConnectMaxAttempts,
			RetryDelay:  cfg.ConnectRetryDelay,
		})
		if err != nil {
			logger.Warn("elevated backend connection failed, admin operations disabled", "error", err)
		} else {
			defer elevated.Pool.Close()
			elevatedRepo := repo.NewRepository(elevated.Pool)
			adminUsers = elevatedRepo
			adminLedger = elevatedRepo
		}
	} else {
		logger.Warn("ADMIN_DB_URL not set, admin operations disabled")
	}

	userRepo := repo.NewRepository(standard.Pool)
	creds := credential.NewStore(userRepo)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	revocationService := service.NewRevocationService(userRepo)

	var identity domain.IdentityProvider
	if cfg.IdentityURL != "" {
		identity = external.NewClient(cfg.IdentityURL, cfg.IdentityAPIKey)
	} else {
		logger.Warn("IDENTITY_URL not set, external login path disabled")
	}

	userService := service.NewUserService(userRepo, creds, tokenService, identity, revocationService)
	adminService := service.NewAdminService(adminUsers, adminLedger)
	authHandler := handler.NewAuthHandler(userService, tokenService, revocationService, adminService)

	if purged, err := revocationService.Sweep(ctx); err != nil {
		logger.Warn("startup sweep failed", "error", err)
	} else {
		logger.Info("swept expired revocations", "purged", purged)
	}

	sweepDone := make(chan struct{})
	go sweepLoop(revocationService, logger, sweepDone)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New())
	handler.RegisterRoutes(app, authHandler)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	close(sweepDone)
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func sweepLoop(revocations *service.RevocationService, logger *slog.Logger, done <-chan struct{}) {
	ticker := time.NewTicker(constant.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), constant.RequestTimeout)
			if purged, err := revocations.Sweep(ctx); err != nil {
				logger.Warn("periodic sweep failed", "error", err)
			} else if purged > 0 {
				logger.Info("swept expired revocations", "purged", purged)
			}
			cancel()
		case <-done:
			return
		}
	}
}
