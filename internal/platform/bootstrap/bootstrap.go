// Package bootstrap builds the adapters selected by a config.Config.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/bus_reservation/internal/adapter/repository/flatfile"
	"github.com/srgjo27/bus_reservation/internal/adapter/repository/postgres"
	"github.com/srgjo27/bus_reservation/internal/core/ports"
	"github.com/srgjo27/bus_reservation/internal/platform/config"
	"github.com/srgjo27/bus_reservation/internal/platform/database"
)

// OpenStateStore returns the configured store and a function that releases it.
func OpenStateStore(ctx context.Context, cfg config.StorageConfig) (ports.StateStore, func() error, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgresDB(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}

		store := postgres.NewStateStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}

		return store, db.Close, nil
	case config.DriverFile:
		log.Printf("Using flat-file storage in %s", cfg.DataDir)
		return flatfile.NewStateStore(cfg.DataDir), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// OpenRedis returns nil when no address is configured.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	log.Printf("Connecting to Redis at %s...", cfg.Addr)

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Println("Redis connected successfully!")
	return client, nil
}
