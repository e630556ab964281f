package cache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheGetSet(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	_, err := mc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mc.Set(ctx, "a", []byte("png")))
	got, err := mc.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), got)

	got[0] = 'x'
	again, _ := mc.Get(ctx, "a")
	assert.Equal(t, []byte("png"), again)

	require.NoError(t, mc.Delete(ctx, "a"))
	_, err = mc.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "a", []byte("1")))
	require.NoError(t, mc.Set(ctx, "b", []byte("2")))
	_, _ = mc.Get(ctx, "a")
	require.NoError(t, mc.Set(ctx, "c", []byte("3")))

	assert.Equal(t, 2, mc.Len())
	_, err := mc.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = mc.Get(ctx, "a")
	assert.NoError(t, err)
}

func TestMemoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryTTL(time.Minute), WithMemoryCleanup(0))
	defer mc.Close()
	clock := time.Unix(1_700_000_000, 0)
	mc.now = func() time.Time { return clock }

	require.NoError(t, mc.Set(ctx, "a", []byte("1")))
	require.NoError(t, mc.Set(ctx, "b", []byte("2")))
	clock = clock.Add(30 * time.Second)
	require.NoError(t, mc.Set(ctx, "b", []byte("3")))

	clock = clock.Add(45 * time.Second)
	_, err := mc.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	mc.purgeExpired()
	assert.Equal(t, 1, mc.Len(), "rewriting b renewed its ttl")
	got, err := mc.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), got)
}

func TestLayeredCacheFillsL1(t *testing.T) {
	ctx := context.Background()
	remote := NewMemoryCache()
	require.NoError(t, remote.Set(ctx, "k", []byte("v")))

	lc := NewLayeredCache(remote)
	defer lc.Close()

	got, err := lc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, remote.Delete(ctx, "k"))
	got, err = lc.Get(ctx, "k")
	require.NoError(t, err, "served from L1")
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, lc.Set(ctx, "n", []byte("w")))
	fromRemote, err := remote.Get(ctx, "n")
	require.NoError(t, err)
	assert.Equal(t, []byte("w"), fromRemote)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "placeholder:perception:300", Key("placeholder", "perception", "300"))
	assert.Equal(t, "chart", Key("chart"))

	long := Key("p", strings.Repeat("x", 300))
	assert.True(t, strings.HasPrefix(long, "p:"))
	assert.Len(t, long, len("p:")+32)
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rc, err := NewRedisCache(WithRedisAddr(addr), WithRedisPrefix("trademind-test"), WithRedisTTL(time.Minute))
	require.NoError(t, err)
	defer rc.Close()

	require.NoError(t, rc.Set(ctx, "k", []byte{0, 1, 2}))
	got, err := rc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, got)

	require.NoError(t, rc.Delete(ctx, "k"))
	_, err = rc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, rc.PublishMessage(ctx, "logs", map[string]int{"n": 1}))
}
