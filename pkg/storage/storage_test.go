package storage

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenSQLite("file::memory:")
	require.NoError(t, err)

	_, found, err := kv.Get(ctx, "cart:state")
	require.NoError(t, err)
	require.False(t, found, "missing key should not be an error")

	require.NoError(t, kv.Set(ctx, "cart:state", `{"items":[]}`))

	value, found, err := kv.Get(ctx, "cart:state")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `{"items":[]}`, value)
}

func TestSQLiteOverwrite(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenSQLite("file::memory:")
	require.NoError(t, err)

	require.NoError(t, kv.Set(ctx, "token", "a"))
	require.NoError(t, kv.Set(ctx, "token", "b"))

	value, found, err := kv.Get(ctx, "token")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "b", value)
}

func TestSQLiteRemove(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenSQLite("file::memory:")
	require.NoError(t, err)

	require.NoError(t, kv.Set(ctx, "token", "a"))
	require.NoError(t, kv.Remove(ctx, "token"))
	// removing a missing key is fine
	require.NoError(t, kv.Remove(ctx, "token"))

	_, found, err := kv.Get(ctx, "token")
	require.NoError(t, err)
	require.False(t, found)
}

func TestRedisKV(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	kv := &RedisKV{store: mock}

	_, found, err := kv.Get(ctx, "cart:state")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, kv.Set(ctx, "cart:state", "snapshot"))
	value, found, err := kv.Get(ctx, "cart:state")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "snapshot", value)

	// keys are namespaced on the wire
	_, namespaced := mock.data["orda:kv:cart:state"]
	require.True(t, namespaced)

	require.NoError(t, kv.Remove(ctx, "cart:state"))
	_, found, err = kv.Get(ctx, "cart:state")
	require.NoError(t, err)
	require.False(t, found)
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
