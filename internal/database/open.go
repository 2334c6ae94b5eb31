package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-wellness/internal/config"
)

// Backend is the opened persistence layer plus any connection other
// components may share.
type Backend struct {
	Store KeyValueStore
	// Redis is non-nil only when STORAGE_DRIVER=redis.
	Redis *redis.Client
}

func (b *Backend) Close() error {
	if b == nil || b.Store == nil {
		return nil
	}
	return b.Store.Close()
}

// Open connects the KeyValueStore selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Backend, error) {
	log = log.With(zap.String("driver", cfg.StorageDriver))

	switch cfg.StorageDriver {
	case config.DriverMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		return &Backend{Store: NewMemoryStore()}, nil

	case config.DriverSQLite:
		db, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		log.Info("opened sqlite", zap.String("path", cfg.SQLitePath))
		return &Backend{Store: NewSQLiteStore(db)}, nil

	case config.DriverRedis:
		client, err := ConnectRedis(ctx, cfg.RedisURI, log)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return &Backend{Store: NewRedisStore(client), Redis: client}, nil

	case config.DriverMongo:
		client, db, err := ConnectMongo(ctx, cfg.MongoURI, log)
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		return &Backend{Store: NewMongoStore(client, db)}, nil

	case config.DriverPostgres:
		db, err := ConnectPostgres(ctx, cfg.PostgresURI, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Backend{Store: NewPostgresStore(db)}, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}
