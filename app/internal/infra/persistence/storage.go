// Package persistence selects the cart slot backend named by configuration.
package persistence

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"example.com/storefront-cart/app/internal/config"
	"example.com/storefront-cart/app/internal/infra/persistence/mysql"
	"example.com/storefront-cart/app/internal/infra/persistence/postgres"
	"example.com/storefront-cart/app/internal/infra/persistence/redis"
	"example.com/storefront-cart/app/internal/infra/persistence/slot"
)

const redisReadyAttempts = 5

// Open returns the slot store for cfg.Driver and a func releasing its
// connections.
func Open(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (slot.Store, func(), error) {
	switch cfg.Driver {
	case "memory":
		return slot.NewMemory(), func() {}, nil
	case "file":
		store, err := slot.NewFile(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case "mysql":
		db, err := mysql.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		return mysql.NewSlotRepository(db), func() { _ = db.Close() }, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewSlotRepository(pool), pool.Close, nil
	case "redis":
		opts, err := redis.Options(cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		store := redis.NewSlotStore(opts, log)
		if err := store.WaitReady(ctx, redisReadyAttempts); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
