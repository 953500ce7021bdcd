package minio

import (
	"Newsroom/internal/api/config"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Store public media bucket
type Store struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

func NewStore(client *minio.Client, cfg config.MinIOConfig) *Store {
	scheme := "http"
	if cfg.ExternalUseSSL {
		scheme = "https"
	}
	return &Store{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: fmt.Sprintf("%s://%s/%s", scheme, cfg.ExternalEndpoint, cfg.Bucket),
	}
}

func (s *Store) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=86400",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) URL(key string) string {
	return s.publicBase + "/" + strings.TrimPrefix(key, "/")
}
