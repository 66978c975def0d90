package redisstore_test

import (
	"context"
	"testing"
	"time"

	redisstore "pairscan-service/internal/infrastructure/redis"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestReserve(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := redisstore.New(client)

	ctx := context.Background()
	now := time.Now()
	ok, err := store.Reserve(ctx, "WETH:0xaaa", now, 5*time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Reserve(ctx, "WETH:0xaaa", now.Add(time.Minute), 5*time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = store.Reserve(ctx, "ZORA:0xaaa", now, 5*time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.True(t, mr.Exists("pairscan:cooldown:WETH:0xaaa"))
	require.Equal(t, 5*time.Minute, mr.TTL("pairscan:cooldown:WETH:0xaaa"))

	mr.FastForward(5 * time.Minute)
	ok, err = store.Reserve(ctx, "WETH:0xaaa", now.Add(5*time.Minute), 5*time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestReserve_ScopesAreIndependent(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	worker := redisstore.NewScoped(client, "")
	api := redisstore.NewScoped(client, "api")
	require.Equal(t, "pairscan:cooldown:", worker.Prefix)

	ctx := context.Background()
	now := time.Now()
	ok, err := api.Reserve(ctx, "WETH:0xaaa", now, 5*time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = worker.Reserve(ctx, "WETH:0xaaa", now, 5*time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = api.Reserve(ctx, "WETH:0xaaa", now.Add(time.Minute), 5*time.Minute)
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, mr.Exists("pairscan:cooldown:api:WETH:0xaaa"))
}

func TestReserve_BackendDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	store := redisstore.New(client)
	mr.Close()

	_, err = store.Reserve(context.Background(), "WETH:0xaaa", time.Now(), time.Minute)
	require.Error(t, err)
	require.Error(t, store.Ping(context.Background()))
}
