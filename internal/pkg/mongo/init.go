package mongo

import (
	"Newsroom/internal/api/config"
	"Newsroom/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongo connects, pings and returns the configured database.
func InitMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetMonitor(logger.NewMongoMonitor()),
	)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("MongoDB initialized", "db", cfg.Database)
	return client.Database(cfg.Database), nil
}
