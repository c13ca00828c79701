package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every Store backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	key := SessionKey("sess-1", KeyCart)

	_, found, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, key, []byte(`[{"id":"coleira","qtd":1}]`)))
	v, found, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":"coleira","qtd":1}]`, string(v))

	require.NoError(t, s.Set(ctx, key, []byte(`[]`)))
	v, _, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(v))

	other := SessionKey("sess-2", KeyCart)
	_, found, err = s.Get(ctx, other)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))
	_, found, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, s.Ping(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte(`[1]`)
	require.NoError(t, s.Set(ctx, "k", buf))
	buf[1] = '2'

	v, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(v))
}

func TestMemoryStore_Closed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Set(context.Background(), "k", []byte(`[]`)), ErrClosed)
	_, _, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func TestRedisStore(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	s := NewRedisStore(client, "storefront:", 0)
	defer func() { _ = s.Close() }()

	exerciseStore(t, s)
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	s := NewRedisStore(client, "storefront:", time.Hour)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.Set(context.Background(), SessionKey("abc", KeyBookings), []byte(`[]`)))

	assert.True(t, mr.Exists("storefront:abc:petflu-bookings"))
	assert.Equal(t, time.Hour, mr.TTL("storefront:abc:petflu-bookings"))
}

func TestRedisStore_Unreachable(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := NewRedisStore(client, "", 0)
	mr.Close()

	err := s.Set(context.Background(), "k", []byte(`[]`))
	assert.Error(t, err)
	assert.Error(t, s.Ping(context.Background()))
}
