package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/optimistlabs/storefront/internal"
	"github.com/optimistlabs/storefront/internal/commerce"
	"github.com/optimistlabs/storefront/internal/form"
	"github.com/optimistlabs/storefront/internal/handler/account"
	"github.com/optimistlabs/storefront/internal/middleware"
	"github.com/optimistlabs/storefront/internal/notify"
	"github.com/optimistlabs/storefront/internal/router"
	"github.com/optimistlabs/storefront/internal/routes"
	"github.com/optimistlabs/storefront/internal/service"
	"github.com/optimistlabs/storefront/internal/telemetry"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	locale := form.Locale{
		Country:      cfg.Locale.Country,
		CallingCode:  cfg.Locale.CallingCode,
		PostalDigits: cfg.Locale.PostalDigits,
	}

	// Initialize commerce client
	logger.Info("Configuring commerce client", "base_url", cfg.Commerce.BaseURL)
	client := commerce.NewStorefrontClient(cfg.Commerce.BaseURL, cfg.Commerce.APIToken, cfg.Commerce.Timeout)

	// Initialize notifications and metrics
	flash := notify.NewFlash(logger)
	formMetrics := telemetry.NewFormMetrics("storefront")

	// Initialize account service
	accountService := service.NewAccountService(client, flash, formMetrics, logger)
	logger.Info("Account service initialized")

	// Initialize handlers
	accountDeps := routes.AccountDeps{
		ProfileHandler: account.NewProfileHandler(accountService, client, flash, locale),
		AddressHandler: account.NewAddressHandler(accountService, client, flash, locale),
		Metrics:        middleware.NewMetrics("storefront"),
		SubmitLimiter:  middleware.NewRateLimiter(middleware.SubmitRateLimiterConfig()),
	}

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		securityConfig.HSTSMaxAge = 0
	}

	readLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		accountDeps.Metrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		middleware.MaxBodySize(middleware.MaxFormBodySize),
		middleware.Timeout(middleware.DefaultRequestTimeout),
		readLimiter.Middleware,
		router.CORS(cfg.AllowedOrigins),
		router.Logger(logger),
		middleware.WithRequestLogger(logger),
	)

	routes.RegisterAccountRoutes(r, accountDeps)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting account server", "address", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
