package ledger

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// DefaultKey is the set national codes are recorded under.
const DefaultKey = "healthgen:national_codes"

// Redis is a national code ledger backed by a Redis set, so that concurrent
// or repeated runs against the same server never reissue a code.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis connects to the server at url and pings it.
func NewRedis(ctx context.Context, url, key string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if key == "" {
		key = DefaultKey
	}
	return &Redis{client: client, key: key}, nil
}

// Reserve adds code to the set and reports whether it was absent.
func (r *Redis) Reserve(ctx context.Context, code string) (bool, error) {
	added, err := r.client.SAdd(ctx, r.key, code).Result()
	if err != nil {
		return false, fmt.Errorf("sadd %s: %w", r.key, err)
	}
	return added == 1, nil
}

// Len returns the number of codes recorded under the key.
func (r *Redis) Len(ctx context.Context) (int64, error) {
	return r.client.SCard(ctx, r.key).Result()
}

// Reset drops every recorded code.
func (r *Redis) Reset(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
