package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, prefix string) (Store, *miniredis.Miniredis, *fakeClock) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	clock := newFakeClock()

	store := NewRedisStore(client, prefix, clock.Now, true)
	t.Cleanup(func() { _ = store.Close() })

	return store, mr, clock
}

func TestRedisStoreAddContains(t *testing.T) {
	ctx := context.Background()
	store, mr, clock := newTestRedisStore(t, "")

	require.NoError(t, store.Add(ctx, "sig-1", clock.Now().Add(time.Minute)))

	assert.True(t, mr.Exists(defaultKeyPrefix+"sig-1"))
	assert.Equal(t, time.Minute, mr.TTL(defaultKeyPrefix+"sig-1"))

	ok, err := store.Contains(ctx, "sig-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Contains(ctx, "sig-2")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(2 * time.Minute)

	ok, err = store.Contains(ctx, "sig-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreSkipsExpired(t *testing.T) {
	ctx := context.Background()
	store, mr, clock := newTestRedisStore(t, "")

	require.NoError(t, store.Add(ctx, "old", clock.Now().Add(-time.Second)))
	require.NoError(t, store.Add(ctx, "now", clock.Now()))

	assert.False(t, mr.Exists(defaultKeyPrefix+"old"))
	assert.False(t, mr.Exists(defaultKeyPrefix+"now"))
}

func TestRedisStoreSizeAndPrefix(t *testing.T) {
	ctx := context.Background()
	store, mr, clock := newTestRedisStore(t, "test:")

	require.NoError(t, mr.Set("unrelated", "1"))
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Add(ctx, id, clock.Now().Add(time.Hour)))
	}

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	removed, err := store.Cleanup(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRedisStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	store, mr, clock := newTestRedisStore(t, "")
	mr.Close()

	err := store.Add(ctx, "x", clock.Now().Add(time.Minute))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis set")

	_, err = store.Contains(ctx, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis exists")
}

func TestNewStore(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"default is memory", Config{}, false},
		{"memory", Config{StoreType: StoreMemory, MaxSize: 10}, false},
		{"redis", Config{StoreType: StoreRedis, RedisAddr: mr.Addr()}, false},
		{"unknown", Config{StoreType: "etcd"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.config, time.Now)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer store.Close()

			ctx := context.Background()
			require.NoError(t, store.Add(ctx, "id", time.Now().Add(time.Minute)))
			ok, err := store.Contains(ctx, "id")
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}
