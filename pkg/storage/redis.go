package storage

import (
	"context"
	stderrors "errors"

	"github.com/redis/go-redis/v9"

	"github.com/agentstation/storefront/pkg/errors"
)

// Redis stores values in a redis server under prefix+key, without expiry.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// NewRedisFromURL connects using a redis:// URL.
func NewRedisFromURL(url, prefix string) (*Redis, error) {
	if url == "" {
		return nil, errors.NewValidationError("redis_url", url, "required for redis storage")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.NewConfigError("storage", "invalid redis url", err)
	}
	return NewRedis(redis.NewClient(opts), prefix), nil
}

// Get implements Backend.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if stderrors.Is(err, redis.Nil) {
		return "", notFound(key)
	}
	if err != nil {
		return "", errors.WrapIO("read", r.key(key), err)
	}
	return v, nil
}

// Set implements Backend.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return errors.WrapIO("write", r.key(key), err)
	}
	return nil
}

// Delete implements Backend.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return errors.WrapIO("delete", r.key(key), err)
	}
	return nil
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close implements Backend.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(key string) string {
	return r.prefix + key
}
