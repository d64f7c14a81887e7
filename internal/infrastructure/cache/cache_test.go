package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	"deal_radar/internal/infrastructure/cache"
)

func redisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDRESS is not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, rdb.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = rdb.Close() })

	return rdb
}

func TestSeenStoreInMemory(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := cache.NewSeenStore(nil)

	seen, err := store.IsSeen(ctx, "v1|1|0")
	rq.NoError(err)
	rq.False(seen)

	rq.NoError(store.MarkSeen(ctx, "v1|1|0"))
	rq.NoError(store.MarkSeen(ctx, "v1|1|0"))

	seen, err = store.IsSeen(ctx, "v1|1|0")
	rq.NoError(err)
	rq.True(seen)

	n, err := store.Count(ctx)
	rq.NoError(err)
	rq.Equal(int64(1), n)
}

func TestSeenStoreRedis(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	rdb := redisClient(t)

	itemID := "v1|" + xid.New().String() + "|0"

	first := cache.NewSeenStore(rdb)
	rq.NoError(first.MarkSeen(ctx, itemID))

	// второй экземпляр без локального кэша видит запись через Redis
	second := cache.NewSeenStore(rdb)
	seen, err := second.IsSeen(ctx, itemID)
	rq.NoError(err)
	rq.True(seen)

	t.Cleanup(func() { rdb.SRem(context.Background(), "deal_radar:seen_items", itemID) })
}

func TestLockManager(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	rdb := redisClient(t)

	lm := cache.NewLockManager(rdb)
	key := "test:" + xid.New().String()

	unlock, err := lm.Acquire(ctx, key, time.Minute)
	rq.NoError(err)

	_, err = lm.Acquire(ctx, key, time.Minute)
	rq.ErrorIs(err, cache.ErrLockHeld)

	unlock()
	unlock()

	unlockAgain, err := lm.Acquire(ctx, key, time.Minute)
	rq.NoError(err)
	unlockAgain()
}
