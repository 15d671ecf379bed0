package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"example.com/storefront-cart/app/internal/infra/persistence/slot"
)

// slotField is the hash field holding the cart payload under each slot key.
const slotField = "cart"

type SlotStore struct {
	client *redis.Client
	log    zerolog.Logger
}

var _ slot.Store = (*SlotStore)(nil)

// Options builds client options from either a redis:// URL or a bare
// host[:port] address.
func Options(addr string) (*redis.Options, error) {
	if strings.Contains(addr, "://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opts, nil
	}
	if !strings.Contains(addr, ":") {
		addr += ":6379"
	}
	return &redis.Options{
		Addr:         addr,
		MinIdleConns: 1,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		PoolTimeout:  4 * time.Second,
		IdleTimeout:  3 * time.Minute,
	}, nil
}

func NewSlotStore(opts *redis.Options, log zerolog.Logger) *SlotStore {
	return &SlotStore{client: redis.NewClient(opts), log: log}
}

// WaitReady pings the server until it answers, backing off exponentially up
// to attempts tries.
func (s *SlotStore) WaitReady(ctx context.Context, attempts int) error {
	for i := 0; i < attempts; i++ {
		err := s.Ping(ctx)
		if err == nil {
			return nil
		}
		backoff := time.Duration(250*(1<<uint(i))) * time.Millisecond
		if backoff > 10*time.Second {
			backoff = 10 * time.Second
		}
		s.log.Warn().Err(err).Int("attempt", i+1).Dur("backoff", backoff).Msg("redis not ready")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("redis not ready after %d attempts", attempts)
}

func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.HGet(ctx, key, slotField).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, slot.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis HGet: %w", err)
	}
	return val, nil
}

func (s *SlotStore) Put(ctx context.Context, key string, data []byte) error {
	if err := s.client.HSet(ctx, key, slotField, data).Err(); err != nil {
		return fmt.Errorf("redis HSet: %w", err)
	}
	return nil
}

func (s *SlotStore) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Ping(pingCtx).Err()
}

func (s *SlotStore) Close() error {
	return s.client.Close()
}
