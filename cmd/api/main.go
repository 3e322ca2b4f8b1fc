package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/media"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"

)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return err
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	checkoutRepo := repository.NewCheckoutRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	subscriberRepo := repository.NewSubscriberRepository(pool, logger)

	// Initialize credentials
	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to initialize password hasher: %w", err)
	}
	tokens, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Image uploads go to S3 when enabled; otherwise the endpoint reports it is not configured
	var uploader media.Uploader
	if cfg.S3.Enabled {
		uploader, err = media.NewS3Uploader(ctx, cfg.S3, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 uploader, image uploads disabled")
			uploader = nil
		}
	} else {
		logger.Info().Msg("image uploads disabled (S3 disabled)")
	}

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	checkoutService := service.NewCheckoutService(checkoutRepo, orderRepo, cartRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	userService := service.NewUserService(userRepo, hasher, tokens, logger)
	subscriberService := service.NewSubscriberService(subscriberRepo, logger)
	adminService := service.NewAdminService(orderService, userService, productService, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Products:    handler.NewProductHandler(productService, adminService, logger),
		Carts:       handler.NewCartHandler(cartService, logger),
		Checkouts:   handler.NewCheckoutHandler(checkoutService, logger),
		Orders:      handler.NewOrderHandler(orderService, logger),
		Users:       handler.NewUserHandler(userService, logger),
		Admin:       handler.NewAdminHandler(adminService, logger),
		Uploads:     handler.NewUploadHandler(uploader, logger),
		Subscribers: handler.NewSubscriberHandler(subscriberService, logger),
	}, tokens, userRepo, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
