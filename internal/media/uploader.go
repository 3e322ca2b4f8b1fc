package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"storefront/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Uploader stores product images and returns the URL they are served from.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// putObjectAPI is the subset of the S3 client used for uploads.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Uploader struct {
	client putObjectAPI
	cfg    config.S3Config
	logger zerolog.Logger
}

// NewS3Uploader creates an uploader backed by the configured bucket.
func NewS3Uploader(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) (Uploader, error) {
	logger = logger.With().Str("component", "s3-uploader").Logger()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Msg("S3 uploader initialised")

	return newS3Uploader(s3.NewFromConfig(awsCfg), cfg, logger), nil
}

func newS3Uploader(client putObjectAPI, cfg config.S3Config, logger zerolog.Logger) *s3Uploader {
	return &s3Uploader{client: client, cfg: cfg, logger: logger}
}

// Upload writes body under a fresh key that keeps the original file extension.
func (u *s3Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := u.cfg.Prefix + uuid.NewString() + strings.ToLower(path.Ext(filename))

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		u.logger.Error().
			Err(err).
			Str("bucket", u.cfg.Bucket).
			Str("key", key).
			Msg("failed to put object")
		return "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}

	url := u.cfg.ObjectURL(key)
	u.logger.Info().Str("key", key).Str("url", url).Msg("image uploaded")
	return url, nil
}
