package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"storefront/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Loader reads a catalogue file of JSON product records, one per line.
// Files ending in .gz are decompressed.
type Loader interface {
	Load(ctx context.Context, name string) ([]model.Product, error)
}

// fileLoader reads catalogue files from the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

func (l *fileLoader) Load(ctx context.Context, name string) ([]model.Product, error) {
	l.logger.Info().Str("file", name).Msg("loading catalogue file")

	file, err := os.Open(name)
	if err != nil {
		l.logger.Error().Err(err).Str("file", name).Msg("failed to open catalogue file")
		return nil, fmt.Errorf("failed to open catalogue file %s: %w", name, err)
	}
	defer file.Close()

	products, err := decodeProducts(ctx, file, name)
	if err != nil {
		l.logger.Error().Err(err).Str("file", name).Msg("failed to read catalogue file")
		return nil, err
	}

	l.logger.Info().
		Str("file", name).
		Int("products_loaded", len(products)).
		Msg("catalogue file loaded")

	return products, nil
}

// getObjectAPI is the subset of the S3 client used to fetch catalogue files.
type getObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader reads catalogue files from an S3 bucket.
type s3Loader struct {
	client getObjectAPI
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a catalogue loader reading from bucket.
func NewS3Loader(client getObjectAPI, bucket string, logger zerolog.Logger) Loader {
	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger.With().Str("component", "s3-catalog-loader").Logger(),
	}
}

func (l *s3Loader) Load(ctx context.Context, key string) ([]model.Product, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Msg("loading catalogue file from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, key, err)
	}
	defer result.Body.Close()

	products, err := decodeProducts(ctx, result.Body, key)
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Int("products_loaded", len(products)).
		Msg("catalogue file loaded from S3")

	return products, nil
}

// fallbackLoader tries S3 first, then the local file system.
type fallbackLoader struct {
	primary  Loader
	fallback Loader
	logger   zerolog.Logger
}

// NewFallbackLoader creates a loader that tries primary first and falls back to
// fallback on any error. A nil primary always uses fallback.
func NewFallbackLoader(primary, fallback Loader, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "fallback-loader").Logger(),
	}
}

func (l *fallbackLoader) Load(ctx context.Context, name string) ([]model.Product, error) {
	if l.primary != nil {
		products, err := l.primary.Load(ctx, name)
		if err == nil {
			return products, nil
		}
		l.logger.Warn().
			Err(err).
			Str("name", name).
			Msg("failed to load from S3, falling back to local file system")
	}
	return l.fallback.Load(ctx, name)
}

func decodeProducts(ctx context.Context, r io.Reader, name string) ([]model.Product, error) {
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var products []model.Product
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var p model.Product
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return nil, fmt.Errorf("invalid product on line %d of %s: %w", lineNo, name, err)
		}
		products = append(products, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalogue file %s: %w", name, err)
	}

	return products, nil
}
