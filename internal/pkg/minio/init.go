package minio

import (
	"Newsroom/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewClient connects with the internal endpoint when one is configured.
func NewClient(ctx context.Context, cfg config.MinIOConfig) (*minio.Client, error) {
	endpoint, useSSL := cfg.InternalEndpoint, cfg.InternalUseSSL
	if endpoint == "" {
		endpoint, useSSL = cfg.ExternalEndpoint, cfg.ExternalUseSSL
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	if err = EnsurePublicBucket(ctx, client, cfg.Bucket); err != nil {
		return nil, err
	}
	return client, nil
}

const publicReadPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/*"]
  }]
}`

// EnsurePublicBucket creates bucket if needed and makes its objects world readable.
func EnsurePublicBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to reach minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		log.Info("Created media bucket", "bucket", bucket)
	}

	if err = client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadPolicy, bucket)); err != nil {
		return fmt.Errorf("failed to set public policy on %s: %w", bucket, err)
	}
	return nil
}
