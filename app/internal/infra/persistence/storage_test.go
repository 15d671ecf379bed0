package persistence

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"example.com/storefront-cart/app/internal/config"
	"example.com/storefront-cart/app/internal/infra/persistence/slot"
)

func TestOpen_Memory(t *testing.T) {
	store, closeFn, err := Open(context.Background(), config.StorageConfig{Driver: "memory"}, zerolog.Nop())
	require.NoError(t, err)
	defer closeFn()

	require.IsType(t, &slot.Memory{}, store)
	require.NoError(t, store.Ping(context.Background()))
}

func TestOpen_File(t *testing.T) {
	dir := t.TempDir()
	store, closeFn, err := Open(context.Background(), config.StorageConfig{Driver: "file", Dir: dir}, zerolog.Nop())
	require.NoError(t, err)
	defer closeFn()

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "@cartData", []byte(`[]`)))
	data, err := store.Get(ctx, "@cartData")
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(data))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.StorageConfig{Driver: "sqlite"}, zerolog.Nop())
	require.Error(t, err)
}

func TestOpen_MySQLBadDSN(t *testing.T) {
	_, _, err := Open(context.Background(), config.StorageConfig{Driver: "mysql", MySQLDSN: "::not a dsn"}, zerolog.Nop())
	require.Error(t, err)
}

func TestOpen_RedisBadURL(t *testing.T) {
	_, _, err := Open(context.Background(), config.StorageConfig{Driver: "redis", RedisAddr: "http://cache:6379"}, zerolog.Nop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse redis url")
}
