package es

import (
	"Newsroom/internal/api/config"
	"Newsroom/internal/pkg/logger"
	"context"
	log "log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

const (
	NotFoundCode = 404
	ConflictCode = 409
)

// NewClient connects to Elasticsearch and checks the cluster answers.
func NewClient(ctx context.Context, elasticCfg config.ElasticConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{elasticCfg.Address},
		Username:  elasticCfg.Username,
		Password:  elasticCfg.Password,
		Transport: &logger.ESTransport{
			Transport: http.DefaultTransport,
		},
	}

	client, err := elasticsearch.NewTypedClient(cfg)
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return nil, err
	}

	info, err := client.Info().Do(ctx)
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return nil, err
	}

	log.Info("Connected to Elasticsearch", "version", info.Version.Int)
	return client, nil
}
