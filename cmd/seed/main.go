package main

import (
	"context"
	"fmt"
	"os"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/repository"
	"storefront/internal/seed"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Strs("files", cfg.Seed.Files).Msg("starting storefront seeder")

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return err
	}

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	// Catalogue files are read from S3 when enabled, with the local copy as fallback
	var remote seed.Loader
	if cfg.S3.Enabled {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3.Region))
		if err != nil {
			logger.Warn().Err(err).Msg("failed to load AWS configuration, using local files only")
		} else {
			remote = seed.NewS3Loader(s3.NewFromConfig(awsCfg), cfg.S3.Bucket, logger)
		}
	}
	loader := seed.NewFallbackLoader(remote, seed.NewFileLoader(logger), logger)

	seeder := seed.NewSeeder(
		repository.NewProductRepository(pool, logger),
		repository.NewUserRepository(pool, logger),
		hasher,
		loader,
		cfg.Seed,
		logger,
	)

	result, err := seeder.Run(ctx)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	logger.Info().
		Str("admin_id", result.Admin.ID.String()).
		Int("products", result.Products).
		Msg("product data seeded successfully")

	return nil
}
