package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
}

func setupTestCache(t *testing.T) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	old := client
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(old) })
}

func TestCacheAside(t *testing.T) {
	setupTestCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			calls++
			dest.ID = 42
			dest.DisplayName = "Quiet Fox"
			return nil
		}
	}

	var first cachedUser
	err := CacheAside(ctx, UserKey(42), &first, UserTTL, fetch(&first))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Quiet Fox", first.DisplayName)

	// Second read should come from the cache without hitting fetch.
	var second cachedUser
	err = CacheAside(ctx, UserKey(42), &second, UserTTL, fetch(&second))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	// Invalidation forces the next read back to the source.
	InvalidateUser(ctx, 42)
	var third cachedUser
	err = CacheAside(ctx, UserKey(42), &third, UserTTL, fetch(&third))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetJSONMiss(t *testing.T) {
	setupTestCache(t)

	var dest cachedUser
	found, err := GetJSON(context.Background(), "user:999", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetJSONAndGetJSON(t *testing.T) {
	setupTestCache(t)
	ctx := context.Background()

	in := cachedUser{ID: 7, DisplayName: "Brave Owl"}
	require.NoError(t, SetJSON(ctx, UserKey(7), in, time.Minute))

	var out cachedUser
	found, err := GetJSON(ctx, UserKey(7), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestNilClientIsNoop(t *testing.T) {
	old := client
	SetClient(nil)
	t.Cleanup(func() { SetClient(old) })

	ctx := context.Background()
	found, err := GetJSON(ctx, "user:1", &cachedUser{})
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetJSON(ctx, "user:1", cachedUser{}, time.Minute))
}
