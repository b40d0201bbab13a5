package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/storefront/pkg/errors"
)

func setupTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "storefront:"), mr
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	file, err := NewFile(t.TempDir())
	require.NoError(t, err)
	r, _ := setupTestRedis(t)
	return map[string]Backend{
		"memory": NewMemory(),
		"file":   file,
		"redis":  r,
	}
}

func TestBackendContract(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Get(ctx, "missing")
			assert.True(t, errors.IsNotFound(err), "missing key should be not found, got %v", err)

			require.NoError(t, b.Set(ctx, "k", "v1"))
			require.NoError(t, b.Set(ctx, "k", "v2"))
			v, err := b.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v2", v)

			require.NoError(t, b.Delete(ctx, "k"))
			_, err = b.Get(ctx, "k")
			assert.True(t, errors.IsNotFound(err))

			assert.NoError(t, b.Delete(ctx, "k"), "deleting a missing key is not an error")
			assert.NoError(t, b.Close())
		})
	}
}

func TestFileBackendLayout(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "state")
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Set(ctx, "simple_store_cart_v1", "[]"))

	data, err := os.ReadFile(filepath.Join(dir, "simple_store_cart_v1"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileBackendRejectsPathKeys(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		err := f.Set(context.Background(), key, "x")
		assert.True(t, errors.IsValidationError(err), "key %q", key)
	}
}

func TestRedisBackendKeysAreNamespaced(t *testing.T) {
	r, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "simple_store_cart_v1", "[]"))
	assert.True(t, mr.Exists("storefront:simple_store_cart_v1"))
	assert.Zero(t, mr.TTL("storefront:simple_store_cart_v1"), "cart keys never expire")
	assert.NoError(t, r.Ping(ctx))
}

func TestRedisBackendUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer func() { _ = client.Close() }()
	r := NewRedis(client, "storefront:")
	mr.Close()

	_, err = r.Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, errors.IsNotFound(err))
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     Config
		want    any
		wantErr bool
	}{
		{"default is file", Config{Dir: t.TempDir()}, &File{}, false},
		{"file", Config{Kind: KindFile, Dir: t.TempDir()}, &File{}, false},
		{"memory", Config{Kind: "MEMORY"}, &Memory{}, false},
		{"redis", Config{Kind: KindRedis, RedisURL: "redis://" + mr.Addr()}, &Redis{}, false},
		{"redis without url", Config{Kind: KindRedis}, nil, true},
		{"unknown", Config{Kind: "sqlite"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Open(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, b)
			_ = b.Close()
		})
	}
}

func TestOpenRedisUsesDefaultPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := Open(Config{Kind: KindRedis, RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	require.NoError(t, b.Set(context.Background(), "cart", "[]"))
	assert.True(t, mr.Exists("storefront:cart"))
}
