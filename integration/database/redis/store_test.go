package redis_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dashboard/core/session"
	"github.com/dmitrymomot/dashboard/integration/database/redis"
)

func setup(t *testing.T, opts ...redis.StoreOption) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewStore(client, opts...), mr
}

func TestStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()
		store, mr := setup(t)
		now := time.Now()
		rec := session.NewRecord("s1", "203.0.113.7", now, time.Hour)

		require.NoError(t, store.Set(ctx, rec))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, rec, *got)

		assert.True(t, mr.Exists("session:s1"))
		assert.Greater(t, mr.TTL("session:s1"), time.Duration(0))
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()
		store, _ := setup(t)
		got, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("evicted after ttl", func(t *testing.T) {
		t.Parallel()
		store, mr := setup(t)
		require.NoError(t, store.Set(ctx, session.NewRecord("s1", "", time.Now(), time.Minute)))

		mr.FastForward(2 * time.Minute)

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired record still present is absent", func(t *testing.T) {
		t.Parallel()
		clock := time.Now()
		store, _ := setup(t, redis.WithClock(func() time.Time { return clock.Add(2 * time.Hour) }))
		rec := session.Record{ID: "s1", CreatedAt: clock.UnixMilli(), ExpiresAt: clock.Add(time.Hour).Unix()}
		require.NoError(t, store.Set(ctx, rec))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set overwrites", func(t *testing.T) {
		t.Parallel()
		store, _ := setup(t)
		now := time.Now()
		require.NoError(t, store.Set(ctx, session.NewRecord("s1", "10.0.0.1", now, time.Hour)))
		require.NoError(t, store.Set(ctx, session.NewRecord("s1", "", now, time.Hour)))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.ClientIP)
	})

	t.Run("increment existing", func(t *testing.T) {
		t.Parallel()
		store, _ := setup(t)
		require.NoError(t, store.Set(ctx, session.NewRecord("s1", "", time.Now(), time.Hour)))

		require.NoError(t, store.IncrementRequests(ctx, "s1"))
		require.NoError(t, store.IncrementRequests(ctx, "s1"))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(2), got.Requests)
	})

	t.Run("increment unknown does not create", func(t *testing.T) {
		t.Parallel()
		store, mr := setup(t)
		require.NoError(t, store.IncrementRequests(ctx, "ghost"))
		assert.False(t, mr.Exists("session:ghost"))
	})

	t.Run("concurrent sets on different ids", func(t *testing.T) {
		t.Parallel()
		store, mr := setup(t)
		var wg sync.WaitGroup
		for _, id := range []string{"a", "b", "c", "d"} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, store.Set(ctx, session.NewRecord(id, "", time.Now(), time.Hour)))
			}()
		}
		wg.Wait()
		assert.Len(t, mr.Keys(), 4)
	})

	t.Run("custom prefix", func(t *testing.T) {
		t.Parallel()
		store, mr := setup(t, redis.WithKeyPrefix("dash:sid:"))
		require.NoError(t, store.Set(ctx, session.NewRecord("s1", "", time.Now(), time.Hour)))
		assert.True(t, mr.Exists("dash:sid:s1"))
	})

	t.Run("empty id", func(t *testing.T) {
		t.Parallel()
		store, _ := setup(t)
		assert.ErrorIs(t, store.Set(ctx, session.Record{}), session.ErrInvalidID)
		_, err := store.Get(ctx, "")
		assert.ErrorIs(t, err, session.ErrInvalidID)
	})

	t.Run("backend down", func(t *testing.T) {
		t.Parallel()
		store, mr := setup(t)
		mr.Close()

		_, err := store.Get(ctx, "s1")
		assert.ErrorIs(t, err, session.ErrStorage)
		assert.ErrorIs(t, store.Set(ctx, session.NewRecord("s1", "", time.Now(), time.Hour)), session.ErrStorage)
		assert.ErrorIs(t, store.IncrementRequests(ctx, "s1"), session.ErrStorage)
		assert.ErrorIs(t, store.Healthcheck(ctx), redis.ErrHealthcheckFailed)
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)
		client, err := redis.Connect(ctx, redis.Config{
			ConnectionURL: "redis://" + mr.Addr() + "/0",
			RetryAttempts: 1,
			RetryInterval: 10 * time.Millisecond,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })
		assert.NoError(t, redis.Healthcheck(client)(ctx))
	})

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(ctx, redis.Config{})
		assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(ctx, redis.Config{ConnectionURL: "http://nope"})
		assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := redis.Connect(ctx, redis.Config{
			ConnectionURL:  "redis://" + addr + "/0",
			RetryAttempts:  1,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, redis.ErrRedisNotReady)
	})
}
