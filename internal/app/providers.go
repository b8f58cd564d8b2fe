package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/repo/store"
)

// newStore builds the configured key-value backend and ties its
// connection to the fx lifecycle.
func newStore(lc fx.Lifecycle, cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return store.NewMemory(), nil
	case "redis":
		return newRedisStore(lc, cfg)
	case "mongo":
		return newMongoStore(lc, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func newRedisStore(lc fx.Lifecycle, cfg *config.Config) (store.Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Storage.Redis.Addr,
		Password: cfg.Storage.Redis.Password,
		DB:       cfg.Storage.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return store.NewRedis(client, cfg.Storage.Redis.KeyPrefix), nil
}

func newMongoStore(lc fx.Lifecycle, cfg *config.Config) (store.Store, error) {
	opts := options.Client().
		SetAppName("storefront").
		ApplyURI(cfg.Storage.Mongo.URI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("init mongo client: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	db := client.Database(cfg.Storage.Mongo.Database)
	return store.NewMongo(db, cfg.Storage.Mongo.Collection), nil
}
